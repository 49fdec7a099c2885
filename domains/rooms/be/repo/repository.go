package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

// Repository defines the persistence operations required by the rooms service.
type Repository interface {
	Create(ctx context.Context, params persistence.CreateRoomParams) (persistence.Room, error)
	List(ctx context.Context) ([]persistence.Room, error)
	ListOccupants(ctx context.Context) (map[uuid.UUID][]persistence.Tenant, error)
}

type postgresRepository struct {
	store *persistence.RoomStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(store *persistence.RoomStore) Repository {
	if store == nil {
		panic("room store is required")
	}
	return &postgresRepository{store: store}
}

func (r *postgresRepository) Create(ctx context.Context, params persistence.CreateRoomParams) (persistence.Room, error) {
	return r.store.CreateRoom(ctx, params)
}

func (r *postgresRepository) List(ctx context.Context) ([]persistence.Room, error) {
	return r.store.ListRooms(ctx)
}

func (r *postgresRepository) ListOccupants(ctx context.Context) (map[uuid.UUID][]persistence.Tenant, error) {
	return r.store.ListRoomOccupants(ctx)
}
