package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const TenantsTable = "tenants"

// RentRecord is one month's entry in the embedded rent history. At most one
// record exists per month label; Status is "Paid" or "Pending" and
// PaymentDate is set iff Status is "Paid". Stored as JSONB on the tenant row.
type RentRecord struct {
	Month       string     `json:"month"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}

// Tenant represents a row in the tenants table.
type Tenant struct {
	TenantID      uuid.UUID    `db:"tenant_id" json:"tenantId"`
	Name          string       `db:"name" json:"name"`
	Phone         string       `db:"phone" json:"phone"`
	RoomID        *uuid.UUID   `db:"room_id" json:"roomId,omitempty"`
	RentAmount    int64        `db:"rent_amount" json:"rentAmount"`
	DepositAmount int64        `db:"deposit_amount" json:"depositAmount"`
	TotalDues     int64        `db:"total_dues" json:"totalDues"`
	JoinDate      time.Time    `db:"join_date" json:"joinDate"`
	RentHistory   []RentRecord `db:"rent_history" json:"rentHistory"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updatedAt"`
}

// RoomRef is the subset of the room row carried along when a tenant is
// listed with its room reference expanded.
type RoomRef struct {
	RoomID     uuid.UUID `json:"roomId"`
	RoomNumber string    `json:"roomNumber"`
	Price      int64     `json:"price"`
}

// TenantWithRoom pairs a tenant with its expanded room reference, if any.
type TenantWithRoom struct {
	Tenant
	Room *RoomRef
}

// TenantLedger is the slice of a tenant row a ledger mutation may read and
// write. History and TotalDues are written back; the rest is read-only input.
type TenantLedger struct {
	JoinDate   time.Time
	RentAmount int64
	TotalDues  int64
	History    []RentRecord
}

// TenantStore exposes persistence helpers for the tenants table.
type TenantStore struct {
	pool *pgxpool.Pool
}

// NewTenantStore returns a store instance bound to the shared pool.
func NewTenantStore(pool *pgxpool.Pool) (*TenantStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &TenantStore{pool: pool}, nil
}

// CreateTenantParams captures the fields required to insert a new tenant.
type CreateTenantParams struct {
	TenantID      uuid.UUID
	Name          string
	Phone         string
	RoomNumber    string
	RentAmount    int64
	DepositAmount int64
	JoinDate      time.Time
}

// CreateTenant inserts a tenant with an empty rent history and zero dues and
// appends it to the occupant list of the room identified by RoomNumber. Both
// writes happen in one transaction; a missing room yields ErrRoomNotFound.
func (s *TenantStore) CreateTenant(ctx context.Context, params CreateTenantParams) (TenantWithRoom, error) {
	if params.TenantID == uuid.Nil {
		return TenantWithRoom{}, errors.New("tenant id is required")
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TenantWithRoom{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var room RoomRef
	err = tx.QueryRow(ctx, fmt.Sprintf(`
        SELECT room_id, room_number, price FROM %s WHERE room_number = $1 FOR UPDATE
    `, RoomsTable), params.RoomNumber).Scan(&room.RoomID, &room.RoomNumber, &room.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TenantWithRoom{}, ErrRoomNotFound
		}
		return TenantWithRoom{}, fmt.Errorf("lookup room: %w", err)
	}

	row := tx.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (tenant_id, name, phone, room_id, rent_amount, deposit_amount, join_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING tenant_id, name, phone, room_id, rent_amount, deposit_amount,
                  total_dues, join_date, rent_history, created_at, updated_at
    `, TenantsTable),
		params.TenantID,
		params.Name,
		params.Phone,
		room.RoomID,
		params.RentAmount,
		params.DepositAmount,
		params.JoinDate,
	)

	tenant, err := scanTenant(row)
	if err != nil {
		return TenantWithRoom{}, fmt.Errorf("insert tenant: %w", err)
	}

	if _, err = tx.Exec(ctx, fmt.Sprintf(`
        UPDATE %s SET occupants = array_append(occupants, $1), updated_at = now()
        WHERE room_id = $2
    `, RoomsTable), params.TenantID, room.RoomID); err != nil {
		return TenantWithRoom{}, fmt.Errorf("append occupant: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return TenantWithRoom{}, fmt.Errorf("commit: %w", err)
	}

	return TenantWithRoom{Tenant: tenant, Room: &room}, nil
}

// ListTenants returns every tenant with its room reference expanded, ordered
// by creation time.
func (s *TenantStore) ListTenants(ctx context.Context) ([]TenantWithRoom, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT t.tenant_id, t.name, t.phone, t.room_id, t.rent_amount, t.deposit_amount,
               t.total_dues, t.join_date, t.rent_history, t.created_at, t.updated_at,
               r.room_number, r.price
        FROM %s t
        LEFT JOIN %s r ON r.room_id = t.room_id
        ORDER BY t.created_at
    `, TenantsTable, RoomsTable))
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]TenantWithRoom, 0)
	for rows.Next() {
		item, scanErr := scanTenantWithRoom(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan tenant: %w", scanErr)
		}
		tenants = append(tenants, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenants: %w", err)
	}

	return tenants, nil
}

// GetTenant returns a single tenant by identifier with its room expanded.
func (s *TenantStore) GetTenant(ctx context.Context, id uuid.UUID) (TenantWithRoom, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT t.tenant_id, t.name, t.phone, t.room_id, t.rent_amount, t.deposit_amount,
               t.total_dues, t.join_date, t.rent_history, t.created_at, t.updated_at,
               r.room_number, r.price
        FROM %s t
        LEFT JOIN %s r ON r.room_id = t.room_id
        WHERE t.tenant_id = $1
    `, TenantsTable, RoomsTable), id)

	item, err := scanTenantWithRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TenantWithRoom{}, ErrTenantNotFound
		}
		return TenantWithRoom{}, err
	}

	return item, nil
}

// UpdateTenantParams carries the optional fields of a partial tenant update.
type UpdateTenantParams struct {
	Name          *string
	Phone         *string
	RentAmount    *int64
	DepositAmount *int64
}

// UpdateTenant applies a partial update and returns the stored record.
func (s *TenantStore) UpdateTenant(ctx context.Context, id uuid.UUID, params UpdateTenantParams) (TenantWithRoom, error) {
	setParts := []string{"updated_at = now()"}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name != nil {
		appendSet("name", *params.Name)
	}
	if params.Phone != nil {
		appendSet("phone", *params.Phone)
	}
	if params.RentAmount != nil {
		appendSet("rent_amount", *params.RentAmount)
	}
	if params.DepositAmount != nil {
		appendSet("deposit_amount", *params.DepositAmount)
	}

	query := fmt.Sprintf(`
        UPDATE %s SET %s WHERE tenant_id = $1
    `, TenantsTable, strings.Join(setParts, ", "))

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return TenantWithRoom{}, fmt.Errorf("update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return TenantWithRoom{}, ErrTenantNotFound
	}

	return s.GetTenant(ctx, id)
}

// DeleteTenant removes the tenant id from its room's occupant list and then
// deletes the tenant row, in one transaction. Occupant removal is attempted
// first so a partial failure never leaves a dangling occupant reference.
func (s *TenantStore) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var roomID *uuid.UUID
	err = tx.QueryRow(ctx, fmt.Sprintf(`
        SELECT room_id FROM %s WHERE tenant_id = $1 FOR UPDATE
    `, TenantsTable), id).Scan(&roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTenantNotFound
		}
		return fmt.Errorf("lookup tenant: %w", err)
	}

	if roomID != nil {
		if _, err = tx.Exec(ctx, fmt.Sprintf(`
            UPDATE %s SET occupants = array_remove(occupants, $1), updated_at = now()
            WHERE room_id = $2
        `, RoomsTable), id, *roomID); err != nil {
			return fmt.Errorf("remove occupant: %w", err)
		}
	}

	if _, err = tx.Exec(ctx, fmt.Sprintf(`
        DELETE FROM %s WHERE tenant_id = $1
    `, TenantsTable), id); err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}

	return tx.Commit(ctx)
}

// MutateLedger loads the tenant's ledger slice under a row lock, applies fn,
// and writes the resulting history and dues back in the same transaction.
// Two concurrent mutations for the same tenant therefore serialize instead of
// overwriting each other. Errors returned by fn propagate unwrapped.
func (s *TenantStore) MutateLedger(ctx context.Context, id uuid.UUID, fn func(TenantLedger) (TenantLedger, error)) (TenantWithRoom, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TenantWithRoom{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var ledger TenantLedger
	err = tx.QueryRow(ctx, fmt.Sprintf(`
        SELECT join_date, rent_amount, total_dues, rent_history
        FROM %s WHERE tenant_id = $1 FOR UPDATE
    `, TenantsTable), id).Scan(&ledger.JoinDate, &ledger.RentAmount, &ledger.TotalDues, &ledger.History)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TenantWithRoom{}, ErrTenantNotFound
		}
		return TenantWithRoom{}, fmt.Errorf("lock tenant ledger: %w", err)
	}

	updated, err := fn(ledger)
	if err != nil {
		return TenantWithRoom{}, err
	}
	if updated.History == nil {
		updated.History = []RentRecord{}
	}

	if _, err = tx.Exec(ctx, fmt.Sprintf(`
        UPDATE %s SET rent_history = $2, total_dues = $3, updated_at = now()
        WHERE tenant_id = $1
    `, TenantsTable), id, updated.History, updated.TotalDues); err != nil {
		return TenantWithRoom{}, fmt.Errorf("save tenant ledger: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return TenantWithRoom{}, fmt.Errorf("commit: %w", err)
	}

	return s.GetTenant(ctx, id)
}

// SumTenantDues returns the sum of total_dues across all tenants.
func (s *TenantStore) SumTenantDues(ctx context.Context) (int64, error) {
	var sum int64
	if err := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT COALESCE(SUM(total_dues), 0) FROM %s
    `, TenantsTable)).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum tenant dues: %w", err)
	}
	return sum, nil
}

func scanTenant(row pgx.Row) (Tenant, error) {
	var tenant Tenant
	if err := row.Scan(
		&tenant.TenantID, &tenant.Name, &tenant.Phone, &tenant.RoomID,
		&tenant.RentAmount, &tenant.DepositAmount, &tenant.TotalDues,
		&tenant.JoinDate, &tenant.RentHistory, &tenant.CreatedAt, &tenant.UpdatedAt,
	); err != nil {
		return Tenant{}, err
	}
	return tenant, nil
}

func scanTenantWithRoom(row pgx.Row) (TenantWithRoom, error) {
	var item TenantWithRoom
	var roomNumber *string
	var roomPrice *int64

	if err := row.Scan(
		&item.TenantID, &item.Name, &item.Phone, &item.RoomID,
		&item.RentAmount, &item.DepositAmount, &item.TotalDues,
		&item.JoinDate, &item.RentHistory, &item.CreatedAt, &item.UpdatedAt,
		&roomNumber, &roomPrice,
	); err != nil {
		return TenantWithRoom{}, err
	}

	if item.RoomID != nil && roomNumber != nil && roomPrice != nil {
		item.Room = &RoomRef{RoomID: *item.RoomID, RoomNumber: *roomNumber, Price: *roomPrice}
	}

	return item, nil
}
