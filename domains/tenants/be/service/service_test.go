package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aadinathdeepak/pg-management-app/domains/tenants/be/ledger"
	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

type mockRepository struct {
	createFn       func(ctx context.Context, params persistence.CreateTenantParams) (persistence.TenantWithRoom, error)
	listFn         func(ctx context.Context) ([]persistence.TenantWithRoom, error)
	getFn          func(ctx context.Context, id uuid.UUID) (persistence.TenantWithRoom, error)
	updateFn       func(ctx context.Context, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.TenantWithRoom, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	mutateLedgerFn func(ctx context.Context, id uuid.UUID, fn func(persistence.TenantLedger) (persistence.TenantLedger, error)) (persistence.TenantWithRoom, error)
}

func (m *mockRepository) Create(ctx context.Context, params persistence.CreateTenantParams) (persistence.TenantWithRoom, error) {
	if m.createFn == nil {
		panic("createFn not configured")
	}
	return m.createFn(ctx, params)
}

func (m *mockRepository) List(ctx context.Context) ([]persistence.TenantWithRoom, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx)
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (persistence.TenantWithRoom, error) {
	if m.getFn == nil {
		panic("getFn not configured")
	}
	return m.getFn(ctx, id)
}

func (m *mockRepository) Update(ctx context.Context, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.TenantWithRoom, error) {
	if m.updateFn == nil {
		panic("updateFn not configured")
	}
	return m.updateFn(ctx, id, params)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		panic("deleteFn not configured")
	}
	return m.deleteFn(ctx, id)
}

func (m *mockRepository) MutateLedger(ctx context.Context, id uuid.UUID, fn func(persistence.TenantLedger) (persistence.TenantLedger, error)) (persistence.TenantWithRoom, error) {
	if m.mutateLedgerFn == nil {
		panic("mutateLedgerFn not configured")
	}
	return m.mutateLedgerFn(ctx, id, fn)
}

// ledgerHarness applies mutation callbacks to an in-memory ledger, standing in
// for the row-locked load/save cycle the postgres repository performs.
type ledgerHarness struct {
	state persistence.TenantLedger
}

func (l *ledgerHarness) mutate(_ context.Context, _ uuid.UUID, fn func(persistence.TenantLedger) (persistence.TenantLedger, error)) (persistence.TenantWithRoom, error) {
	updated, err := fn(l.state)
	if err != nil {
		return persistence.TenantWithRoom{}, err
	}
	l.state = updated
	return persistence.TenantWithRoom{}, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAddValidation(t *testing.T) {
	t.Parallel()

	svc := New(&mockRepository{})

	_, err := svc.Add(context.Background(), AddInput{})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Contains(t, validationErr.Fields, "name")
	require.Contains(t, validationErr.Fields, "phone")
	require.Contains(t, validationErr.Fields, "roomNumber")
	require.Contains(t, validationErr.Fields, "rentAmount")
	require.Contains(t, validationErr.Fields, "joinDate")
}

func TestAddSuccess(t *testing.T) {
	t.Parallel()

	joinDate := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	roomID := uuid.New()
	repository := &mockRepository{}

	repository.createFn = func(ctx context.Context, params persistence.CreateTenantParams) (persistence.TenantWithRoom, error) {
		require.NotEqual(t, uuid.Nil, params.TenantID)
		require.Equal(t, "Arjun Kumar", params.Name)
		require.Equal(t, "101", params.RoomNumber)
		require.EqualValues(t, 6000, params.RentAmount)

		return persistence.TenantWithRoom{
			Tenant: persistence.Tenant{
				TenantID:      params.TenantID,
				Name:          params.Name,
				Phone:         params.Phone,
				RoomID:        &roomID,
				RentAmount:    params.RentAmount,
				DepositAmount: params.DepositAmount,
				JoinDate:      params.JoinDate,
				RentHistory:   []persistence.RentRecord{},
			},
			Room: &persistence.RoomRef{RoomID: roomID, RoomNumber: "101", Price: 6000},
		}, nil
	}

	svc := New(repository)
	tenant, err := svc.Add(context.Background(), AddInput{
		Name:          "  Arjun Kumar ",
		Phone:         " 9876543210 ",
		RoomNumber:    " 101 ",
		JoinDate:      joinDate,
		DepositAmount: 12000,
		RentAmount:    6000,
	})
	require.NoError(t, err)
	require.Equal(t, "Arjun Kumar", tenant.Name)
	require.NotNil(t, tenant.Room)
	require.Equal(t, "101", tenant.Room.RoomNumber)
	require.Zero(t, tenant.TotalDues)
	require.Empty(t, tenant.RentHistory)
}

func TestAddMapsRoomNotFound(t *testing.T) {
	t.Parallel()

	repository := &mockRepository{
		createFn: func(ctx context.Context, params persistence.CreateTenantParams) (persistence.TenantWithRoom, error) {
			return persistence.TenantWithRoom{}, persistence.ErrRoomNotFound
		},
	}

	svc := New(repository)
	_, err := svc.Add(context.Background(), AddInput{
		Name:       "A",
		Phone:      "1",
		RoomNumber: "999",
		JoinDate:   time.Now(),
		RentAmount: 6000,
	})
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestUpdateRequiresAField(t *testing.T) {
	t.Parallel()

	svc := New(&mockRepository{})
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Contains(t, validationErr.Fields, "payload")
}

func TestDeleteMapsNotFound(t *testing.T) {
	t.Parallel()

	repository := &mockRepository{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return persistence.ErrTenantNotFound
		},
	}

	svc := New(repository)
	require.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), ErrNotFound)
}

func TestPayReducesDues(t *testing.T) {
	t.Parallel()

	harness := &ledgerHarness{state: persistence.TenantLedger{
		JoinDate:   time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		RentAmount: 6000,
		TotalDues:  6000,
		History: []persistence.RentRecord{
			{Month: "Dec 2024", Amount: 6000, Status: "Pending"},
		},
	}}

	svc := &service{
		repo: &mockRepository{mutateLedgerFn: harness.mutate},
		now:  fixedClock(time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)),
	}

	require.NoError(t, svc.Pay(context.Background(), uuid.New(), "Dec 2024"))
	require.EqualValues(t, 0, harness.state.TotalDues)
	require.Equal(t, "Paid", harness.state.History[0].Status)
	require.NotNil(t, harness.state.History[0].PaymentDate)

	// Second call is a no-op, not an error.
	require.NoError(t, svc.Pay(context.Background(), uuid.New(), "Dec 2024"))
	require.EqualValues(t, 0, harness.state.TotalDues)
}

func TestPayMissingRecordIsNoOp(t *testing.T) {
	t.Parallel()

	harness := &ledgerHarness{state: persistence.TenantLedger{
		JoinDate:   time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		RentAmount: 6000,
	}}

	svc := &service{
		repo: &mockRepository{mutateLedgerFn: harness.mutate},
		now:  fixedClock(time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)),
	}

	require.NoError(t, svc.Pay(context.Background(), uuid.New(), "Dec 2024"))
	require.Empty(t, harness.state.History)
	require.Zero(t, harness.state.TotalDues)
}

func TestToggleRentRoundTrip(t *testing.T) {
	t.Parallel()

	harness := &ledgerHarness{state: persistence.TenantLedger{
		JoinDate:   time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		RentAmount: 6000,
		TotalDues:  6000,
		History: []persistence.RentRecord{
			{Month: "Dec 2024", Amount: 6000, Status: "Pending"},
		},
	}}

	svc := &service{
		repo: &mockRepository{mutateLedgerFn: harness.mutate},
		now:  fixedClock(time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)),
	}

	require.NoError(t, svc.ToggleRent(context.Background(), uuid.New(), "Dec 2024"))
	require.EqualValues(t, 0, harness.state.TotalDues)
	require.Equal(t, "Paid", harness.state.History[0].Status)

	require.NoError(t, svc.ToggleRent(context.Background(), uuid.New(), "Dec 2024"))
	require.EqualValues(t, 6000, harness.state.TotalDues)
	require.Equal(t, "Pending", harness.state.History[0].Status)
}

func TestToggleRentCreatesRecordForUntrackedMonth(t *testing.T) {
	t.Parallel()

	harness := &ledgerHarness{state: persistence.TenantLedger{
		JoinDate:   time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		RentAmount: 6000,
	}}

	svc := &service{
		repo: &mockRepository{mutateLedgerFn: harness.mutate},
		now:  fixedClock(time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)),
	}

	require.NoError(t, svc.ToggleRent(context.Background(), uuid.New(), "Mar 2024"))
	require.Len(t, harness.state.History, 1)
	require.Equal(t, "Mar 2024", harness.state.History[0].Month)
	require.Equal(t, "Paid", harness.state.History[0].Status)
	require.Zero(t, harness.state.TotalDues)
}

func TestToggleRentRejectsOutOfRangeMonth(t *testing.T) {
	t.Parallel()

	harness := &ledgerHarness{state: persistence.TenantLedger{
		JoinDate:   time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		RentAmount: 6000,
	}}

	svc := &service{
		repo: &mockRepository{mutateLedgerFn: harness.mutate},
		now:  fixedClock(time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)),
	}

	err := svc.ToggleRent(context.Background(), uuid.New(), "Jan 2025")
	require.ErrorIs(t, err, ledger.ErrMonthOutOfRange)

	err = svc.ToggleRent(context.Background(), uuid.New(), "Apr 2024")
	require.ErrorIs(t, err, ledger.ErrMonthOutOfRange)
	require.Empty(t, harness.state.History)
}

func TestListMapsRecords(t *testing.T) {
	t.Parallel()

	roomID := uuid.New()
	tenantID := uuid.New()
	repository := &mockRepository{
		listFn: func(ctx context.Context) ([]persistence.TenantWithRoom, error) {
			return []persistence.TenantWithRoom{{
				Tenant: persistence.Tenant{
					TenantID:   tenantID,
					Name:       "Vivek Singh",
					Phone:      "9123456789",
					RoomID:     &roomID,
					RentAmount: 6000,
					TotalDues:  6000,
					JoinDate:   time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
					RentHistory: []persistence.RentRecord{
						{Month: "Dec 2024", Amount: 6000, Status: "Pending"},
					},
				},
				Room: &persistence.RoomRef{RoomID: roomID, RoomNumber: "101", Price: 6000},
			}}, nil
		},
	}

	svc := New(repository)
	tenants, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	require.Equal(t, tenantID, tenants[0].ID)
	require.NotNil(t, tenants[0].Room)
	require.Equal(t, "101", tenants[0].Room.RoomNumber)
	require.Len(t, tenants[0].RentHistory, 1)
	require.Equal(t, ledger.StatusPending, tenants[0].RentHistory[0].Status)
}
