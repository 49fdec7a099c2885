package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aadinathdeepak/pg-management-app/domains/tenants/be/ledger"
	"github.com/aadinathdeepak/pg-management-app/domains/tenants/be/repo"
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

// Domain sentinel errors.
var (
	ErrNotFound     = errors.New("tenant not found")
	ErrRoomNotFound = errors.New("room not found")
)

// RoomRef is the expanded room reference carried on a tenant.
type RoomRef struct {
	ID         uuid.UUID
	RoomNumber string
	Price      int64
}

// Tenant represents the domain view of a tenant record, rent history included.
type Tenant struct {
	ID            uuid.UUID
	Name          string
	Phone         string
	Room          *RoomRef
	RentAmount    int64
	DepositAmount int64
	TotalDues     int64
	JoinDate      time.Time
	RentHistory   []ledger.Record
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AddInput represents the payload required to register a new tenant.
type AddInput struct {
	Name          string
	Phone         string
	RoomNumber    string
	JoinDate      time.Time
	DepositAmount int64
	RentAmount    int64
}

// UpdateInput encapsulates the fields a partial tenant update may touch.
type UpdateInput struct {
	Name          *string
	Phone         *string
	RentAmount    *int64
	DepositAmount *int64
}

// Service defines the business operations for the tenants domain, including
// the rent-ledger mutations.
type Service interface {
	List(ctx context.Context) ([]Tenant, error)
	Add(ctx context.Context, input AddInput) (Tenant, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Pay(ctx context.Context, id uuid.UUID, month string) error
	ToggleRent(ctx context.Context, id uuid.UUID, month string) error
}

type service struct {
	repo repo.Repository
	now  func() time.Time
}

// New constructs a tenants Service instance backed by the provided repository.
func New(r repo.Repository) Service {
	if r == nil {
		panic("tenants repository is required")
	}
	return &service{repo: r, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]Tenant, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	tenants := make([]Tenant, 0, len(records))
	for _, record := range records {
		tenants = append(tenants, mapTenant(record))
	}
	return tenants, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (Tenant, error) {
	fieldErrors := FieldErrors{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fieldErrors.add("name", "name is required")
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		fieldErrors.add("phone", "phone is required")
	}
	roomNumber := strings.TrimSpace(input.RoomNumber)
	if roomNumber == "" {
		fieldErrors.add("roomNumber", "roomNumber is required")
	}
	if input.RentAmount <= 0 {
		fieldErrors.add("rentAmount", "rentAmount must be positive")
	}
	if input.DepositAmount < 0 {
		fieldErrors.add("depositAmount", "depositAmount cannot be negative")
	}
	if input.JoinDate.IsZero() {
		fieldErrors.add("joinDate", "joinDate is required")
	}

	if len(fieldErrors) > 0 {
		return Tenant{}, &ValidationError{Fields: fieldErrors}
	}

	record, err := s.repo.Create(ctx, persistence.CreateTenantParams{
		TenantID:      uuid.New(),
		Name:          name,
		Phone:         phone,
		RoomNumber:    roomNumber,
		RentAmount:    input.RentAmount,
		DepositAmount: input.DepositAmount,
		JoinDate:      input.JoinDate,
	})
	if err != nil {
		return Tenant{}, mapPersistenceError(err)
	}

	return mapTenant(record), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (Tenant, error) {
	if id == uuid.Nil {
		return Tenant{}, ErrNotFound
	}

	params, err := buildUpdateParams(input)
	if err != nil {
		return Tenant{}, err
	}

	record, repoErr := s.repo.Update(ctx, id, params)
	if repoErr != nil {
		return Tenant{}, mapPersistenceError(repoErr)
	}

	return mapTenant(record), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapPersistenceError(err)
	}
	return nil
}

// Pay marks the given month Paid and reduces the tenant's dues by the record
// amount. A missing or already-Paid record leaves the ledger untouched; the
// caller still gets success, mirroring the dashboard's optimistic click flow.
func (s *service) Pay(ctx context.Context, id uuid.UUID, month string) error {
	if id == uuid.Nil {
		return ErrNotFound
	}
	if strings.TrimSpace(month) == "" {
		return newValidationError("month", "month is required")
	}

	_, err := s.repo.MutateLedger(ctx, id, func(state persistence.TenantLedger) (persistence.TenantLedger, error) {
		records, delta, changed := ledger.MarkPaid(toLedgerRecords(state.History), month, s.now())
		if !changed {
			return state, nil
		}
		state.History = fromLedgerRecords(records)
		state.TotalDues += delta
		return state, nil
	})
	if err != nil {
		return mapPersistenceError(err)
	}
	return nil
}

// ToggleRent flips the payment state of the given month. Out-of-range months
// (before the join month or after the current one) are rejected with
// ledger.ErrMonthOutOfRange.
func (s *service) ToggleRent(ctx context.Context, id uuid.UUID, month string) error {
	if id == uuid.Nil {
		return ErrNotFound
	}
	if strings.TrimSpace(month) == "" {
		return newValidationError("month", "month is required")
	}

	_, err := s.repo.MutateLedger(ctx, id, func(state persistence.TenantLedger) (persistence.TenantLedger, error) {
		now := s.now()
		records, delta, toggleErr := ledger.Toggle(
			toLedgerRecords(state.History), month, state.JoinDate, now, state.RentAmount, now,
		)
		if toggleErr != nil {
			return state, toggleErr
		}
		state.History = fromLedgerRecords(records)
		state.TotalDues += delta
		return state, nil
	})
	if err != nil {
		return mapPersistenceError(err)
	}
	return nil
}

func buildUpdateParams(input UpdateInput) (persistence.UpdateTenantParams, error) {
	fieldErrors := FieldErrors{}
	params := persistence.UpdateTenantParams{}
	fieldsSet := 0

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			fieldErrors.add("name", "name cannot be empty")
		} else {
			params.Name = &name
			fieldsSet++
		}
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			fieldErrors.add("phone", "phone cannot be empty")
		} else {
			params.Phone = &phone
			fieldsSet++
		}
	}
	if input.RentAmount != nil {
		if *input.RentAmount <= 0 {
			fieldErrors.add("rentAmount", "rentAmount must be positive")
		} else {
			params.RentAmount = input.RentAmount
			fieldsSet++
		}
	}
	if input.DepositAmount != nil {
		if *input.DepositAmount < 0 {
			fieldErrors.add("depositAmount", "depositAmount cannot be negative")
		} else {
			params.DepositAmount = input.DepositAmount
			fieldsSet++
		}
	}

	if fieldsSet == 0 && len(fieldErrors) == 0 {
		fieldErrors.add("payload", "at least one field must be provided")
	}
	if len(fieldErrors) > 0 {
		return persistence.UpdateTenantParams{}, &ValidationError{Fields: fieldErrors}
	}

	return params, nil
}

func mapTenant(record persistence.TenantWithRoom) Tenant {
	tenant := Tenant{
		ID:            record.TenantID,
		Name:          record.Name,
		Phone:         record.Phone,
		RentAmount:    record.RentAmount,
		DepositAmount: record.DepositAmount,
		TotalDues:     record.TotalDues,
		JoinDate:      record.JoinDate,
		RentHistory:   toLedgerRecords(record.RentHistory),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
	if record.Room != nil {
		tenant.Room = &RoomRef{
			ID:         record.Room.RoomID,
			RoomNumber: record.Room.RoomNumber,
			Price:      record.Room.Price,
		}
	}
	return tenant
}

func toLedgerRecords(records []persistence.RentRecord) []ledger.Record {
	out := make([]ledger.Record, 0, len(records))
	for _, record := range records {
		out = append(out, ledger.Record{
			Month:       record.Month,
			Amount:      record.Amount,
			Status:      ledger.Status(record.Status),
			PaymentDate: record.PaymentDate,
		})
	}
	return out
}

func fromLedgerRecords(records []ledger.Record) []persistence.RentRecord {
	out := make([]persistence.RentRecord, 0, len(records))
	for _, record := range records {
		out = append(out, persistence.RentRecord{
			Month:       record.Month,
			Amount:      record.Amount,
			Status:      string(record.Status),
			PaymentDate: record.PaymentDate,
		})
	}
	return out
}

func mapPersistenceError(err error) error {
	switch {
	case errors.Is(err, persistence.ErrTenantNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrRoomNotFound):
		return ErrRoomNotFound
	default:
		return err
	}
}

func newValidationError(field, message string) error {
	fe := FieldErrors{}
	fe.add(field, message)
	return &ValidationError{Fields: fe}
}

func (f FieldErrors) add(field, message string) {
	if f == nil {
		return
	}
	f[field] = append(f[field], message)
}
