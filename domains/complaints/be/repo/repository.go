package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

// Repository defines the persistence operations required by the complaints service.
type Repository interface {
	Create(ctx context.Context, params persistence.CreateComplaintParams) (persistence.Complaint, error)
	List(ctx context.Context) ([]persistence.Complaint, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	store *persistence.ComplaintStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(store *persistence.ComplaintStore) Repository {
	if store == nil {
		panic("complaint store is required")
	}
	return &postgresRepository{store: store}
}

func (r *postgresRepository) Create(ctx context.Context, params persistence.CreateComplaintParams) (persistence.Complaint, error) {
	return r.store.CreateComplaint(ctx, params)
}

func (r *postgresRepository) List(ctx context.Context) ([]persistence.Complaint, error) {
	return r.store.ListComplaints(ctx)
}

func (r *postgresRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	return r.store.ResolveComplaint(ctx, id)
}
