package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/aadinathdeepak/pg-management-app/domains/rooms/be/repo"
	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

// ValidationError is returned when the input payload is invalid.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// ErrConflict indicates the room number is already taken.
var ErrConflict = errors.New("room conflict")

// Occupant is the slice of a tenant shown inside a room listing.
type Occupant struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	TotalDues int64
}

// Room represents the domain view of a room with its occupants expanded.
// Capacity is declarative only; nothing rejects an over-full room.
type Room struct {
	ID         uuid.UUID
	RoomNumber string
	Capacity   int
	Price      int64
	Occupants  []Occupant
}

// CreateInput represents the payload required to create a room.
type CreateInput struct {
	RoomNumber string
	Capacity   int
	Price      int64
}

// Service defines the business operations for the rooms domain.
type Service interface {
	List(ctx context.Context) ([]Room, error)
	Create(ctx context.Context, input CreateInput) (Room, error)
}

type service struct {
	repo repo.Repository
}

// New constructs a rooms Service instance backed by the provided repository.
func New(r repo.Repository) Service {
	if r == nil {
		panic("rooms repository is required")
	}
	return &service{repo: r}
}

func (s *service) List(ctx context.Context) ([]Room, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	occupants, err := s.repo.ListOccupants(ctx)
	if err != nil {
		return nil, err
	}

	rooms := make([]Room, 0, len(records))
	for _, record := range records {
		rooms = append(rooms, mapRoom(record, occupants[record.RoomID]))
	}
	return rooms, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (Room, error) {
	fieldErrors := FieldErrors{}

	roomNumber := strings.TrimSpace(input.RoomNumber)
	if roomNumber == "" {
		fieldErrors.add("roomNumber", "roomNumber is required")
	}
	if input.Capacity <= 0 {
		fieldErrors.add("capacity", "capacity must be positive")
	}
	if input.Price < 0 {
		fieldErrors.add("price", "price cannot be negative")
	}

	if len(fieldErrors) > 0 {
		return Room{}, &ValidationError{Fields: fieldErrors}
	}

	record, err := s.repo.Create(ctx, persistence.CreateRoomParams{
		RoomID:     uuid.New(),
		RoomNumber: roomNumber,
		Capacity:   input.Capacity,
		Price:      input.Price,
	})
	if err != nil {
		if errors.Is(err, persistence.ErrRoomConflict) {
			return Room{}, ErrConflict
		}
		return Room{}, err
	}

	return mapRoom(record, nil), nil
}

func mapRoom(record persistence.Room, tenants []persistence.Tenant) Room {
	room := Room{
		ID:         record.RoomID,
		RoomNumber: record.RoomNumber,
		Capacity:   record.Capacity,
		Price:      record.Price,
		Occupants:  make([]Occupant, 0, len(tenants)),
	}
	for _, tenant := range tenants {
		room.Occupants = append(room.Occupants, Occupant{
			ID:        tenant.TenantID,
			Name:      tenant.Name,
			Phone:     tenant.Phone,
			TotalDues: tenant.TotalDues,
		})
	}
	return room
}

func (f FieldErrors) add(field, message string) {
	if f == nil {
		return
	}
	f[field] = append(f[field], message)
}
