package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

// Repository defines the persistence operations required by the tenants service.
type Repository interface {
	Create(ctx context.Context, params persistence.CreateTenantParams) (persistence.TenantWithRoom, error)
	List(ctx context.Context) ([]persistence.TenantWithRoom, error)
	Get(ctx context.Context, id uuid.UUID) (persistence.TenantWithRoom, error)
	Update(ctx context.Context, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.TenantWithRoom, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MutateLedger(ctx context.Context, id uuid.UUID, fn func(persistence.TenantLedger) (persistence.TenantLedger, error)) (persistence.TenantWithRoom, error)
}

type postgresRepository struct {
	store *persistence.TenantStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(store *persistence.TenantStore) Repository {
	if store == nil {
		panic("tenant store is required")
	}
	return &postgresRepository{store: store}
}

func (r *postgresRepository) Create(ctx context.Context, params persistence.CreateTenantParams) (persistence.TenantWithRoom, error) {
	return r.store.CreateTenant(ctx, params)
}

func (r *postgresRepository) List(ctx context.Context) ([]persistence.TenantWithRoom, error) {
	return r.store.ListTenants(ctx)
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (persistence.TenantWithRoom, error) {
	return r.store.GetTenant(ctx, id)
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.TenantWithRoom, error) {
	return r.store.UpdateTenant(ctx, id, params)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteTenant(ctx, id)
}

func (r *postgresRepository) MutateLedger(ctx context.Context, id uuid.UUID, fn func(persistence.TenantLedger) (persistence.TenantLedger, error)) (persistence.TenantWithRoom, error) {
	return r.store.MutateLedger(ctx, id, fn)
}
