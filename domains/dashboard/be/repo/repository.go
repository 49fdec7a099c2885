package repo

import (
	"context"

	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

// Repository defines the read-side aggregates the dashboard needs.
type Repository interface {
	CountRooms(ctx context.Context) (int, error)
	CountOpenComplaints(ctx context.Context) (int, error)
	SumTenantDues(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	rooms      *persistence.RoomStore
	tenants    *persistence.TenantStore
	complaints *persistence.ComplaintStore
}

// NewPostgresRepository constructs a repository spanning the three stores the
// dashboard aggregates over.
func NewPostgresRepository(rooms *persistence.RoomStore, tenants *persistence.TenantStore, complaints *persistence.ComplaintStore) Repository {
	if rooms == nil || tenants == nil || complaints == nil {
		panic("room, tenant and complaint stores are required")
	}
	return &postgresRepository{rooms: rooms, tenants: tenants, complaints: complaints}
}

func (r *postgresRepository) CountRooms(ctx context.Context) (int, error) {
	return r.rooms.CountRooms(ctx)
}

func (r *postgresRepository) CountOpenComplaints(ctx context.Context) (int, error) {
	return r.complaints.CountOpenComplaints(ctx)
}

func (r *postgresRepository) SumTenantDues(ctx context.Context) (int64, error) {
	return r.tenants.SumTenantDues(ctx)
}
