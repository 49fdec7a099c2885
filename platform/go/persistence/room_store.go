package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const RoomsTable = "rooms"

// Room represents a row in the rooms table. Occupants holds the tenant ids
// currently assigned to the room; capacity is declarative and never enforced
// against the occupant count.
type Room struct {
	RoomID     uuid.UUID   `db:"room_id" json:"roomId"`
	RoomNumber string      `db:"room_number" json:"roomNumber"`
	Capacity   int         `db:"capacity" json:"capacity"`
	Price      int64       `db:"price" json:"price"`
	Occupants  []uuid.UUID `db:"occupants" json:"occupants"`
	CreatedAt  time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updatedAt"`
}

// RoomStore exposes persistence helpers for the rooms table.
type RoomStore struct {
	pool *pgxpool.Pool
}

// NewRoomStore returns a store instance bound to the shared pool.
func NewRoomStore(pool *pgxpool.Pool) (*RoomStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &RoomStore{pool: pool}, nil
}

// CreateRoomParams captures the fields required to insert a new room.
type CreateRoomParams struct {
	RoomID     uuid.UUID
	RoomNumber string
	Capacity   int
	Price      int64
}

// CreateRoom inserts a new room with an empty occupant list.
func (s *RoomStore) CreateRoom(ctx context.Context, params CreateRoomParams) (Room, error) {
	if params.RoomID == uuid.Nil {
		return Room{}, errors.New("room id is required")
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (room_id, room_number, capacity, price)
        VALUES ($1, $2, $3, $4)
        RETURNING room_id, room_number, capacity, price, occupants, created_at, updated_at
    `, RoomsTable),
		params.RoomID,
		params.RoomNumber,
		params.Capacity,
		params.Price,
	)

	room, err := scanRoom(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Room{}, ErrRoomConflict
		}
		return Room{}, err
	}

	return room, nil
}

// ListRooms returns every room ordered by room number.
func (s *RoomStore) ListRooms(ctx context.Context) ([]Room, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT room_id, room_number, capacity, price, occupants, created_at, updated_at
        FROM %s
        ORDER BY room_number
    `, RoomsTable))
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]Room, 0)
	for rows.Next() {
		room, scanErr := scanRoom(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan room: %w", scanErr)
		}
		rooms = append(rooms, room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}

	return rooms, nil
}

// GetRoomByNumber returns the room with the given (unique) room number.
func (s *RoomStore) GetRoomByNumber(ctx context.Context, roomNumber string) (Room, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT room_id, room_number, capacity, price, occupants, created_at, updated_at
        FROM %s WHERE room_number = $1
    `, RoomsTable), roomNumber)

	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Room{}, ErrRoomNotFound
		}
		return Room{}, err
	}

	return room, nil
}

// CountRooms returns the total number of rooms.
func (s *RoomStore) CountRooms(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", RoomsTable)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return count, nil
}

// ListRoomOccupants returns the tenants assigned to each room, keyed by room
// id. One query serves the whole rooms listing.
func (s *RoomStore) ListRoomOccupants(ctx context.Context) (map[uuid.UUID][]Tenant, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT r.room_id,
               t.tenant_id, t.name, t.phone, t.room_id, t.rent_amount, t.deposit_amount,
               t.total_dues, t.join_date, t.rent_history, t.created_at, t.updated_at
        FROM %s r
        JOIN %s t ON t.tenant_id = ANY (r.occupants)
        ORDER BY r.room_number, t.created_at
    `, RoomsTable, TenantsTable))
	if err != nil {
		return nil, fmt.Errorf("list room occupants: %w", err)
	}
	defer rows.Close()

	occupants := make(map[uuid.UUID][]Tenant)
	for rows.Next() {
		var roomID uuid.UUID
		var tenant Tenant
		if scanErr := rows.Scan(
			&roomID,
			&tenant.TenantID, &tenant.Name, &tenant.Phone, &tenant.RoomID,
			&tenant.RentAmount, &tenant.DepositAmount, &tenant.TotalDues,
			&tenant.JoinDate, &tenant.RentHistory, &tenant.CreatedAt, &tenant.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan room occupant: %w", scanErr)
		}
		occupants[roomID] = append(occupants[roomID], tenant)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room occupants: %w", err)
	}

	return occupants, nil
}

func scanRoom(row pgx.Row) (Room, error) {
	var room Room
	if err := row.Scan(
		&room.RoomID, &room.RoomNumber, &room.Capacity, &room.Price,
		&room.Occupants, &room.CreatedAt, &room.UpdatedAt,
	); err != nil {
		return Room{}, err
	}
	return room, nil
}
