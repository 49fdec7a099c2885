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

const ComplaintsTable = "complaints"

// Complaint represents a row in the complaints table. RoomNumber is free
// text, not a foreign key; complaints live independently of rooms.
type Complaint struct {
	ComplaintID uuid.UUID `db:"complaint_id" json:"complaintId"`
	RoomNumber  string    `db:"room_number" json:"roomNumber"`
	IssueType   string    `db:"issue_type" json:"issueType"`
	Description string    `db:"description" json:"description"`
	IsResolved  bool      `db:"is_resolved" json:"isResolved"`
	DateRaised  time.Time `db:"date_raised" json:"dateRaised"`
}

// ComplaintStore exposes persistence helpers for the complaints table.
type ComplaintStore struct {
	pool *pgxpool.Pool
}

// NewComplaintStore returns a store instance bound to the shared pool.
func NewComplaintStore(pool *pgxpool.Pool) (*ComplaintStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &ComplaintStore{pool: pool}, nil
}

// CreateComplaintParams captures the fields required to insert a complaint.
type CreateComplaintParams struct {
	ComplaintID uuid.UUID
	RoomNumber  string
	IssueType   string
	Description string
	IsResolved  bool
	DateRaised  time.Time
}

// CreateComplaint inserts a complaint and returns the persisted record.
func (s *ComplaintStore) CreateComplaint(ctx context.Context, params CreateComplaintParams) (Complaint, error) {
	if params.ComplaintID == uuid.Nil {
		return Complaint{}, errors.New("complaint id is required")
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (complaint_id, room_number, issue_type, description, is_resolved, date_raised)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING complaint_id, room_number, issue_type, description, is_resolved, date_raised
    `, ComplaintsTable),
		params.ComplaintID,
		params.RoomNumber,
		params.IssueType,
		params.Description,
		params.IsResolved,
		params.DateRaised,
	)

	return scanComplaint(row)
}

// ListComplaints returns every complaint, newest first.
func (s *ComplaintStore) ListComplaints(ctx context.Context) ([]Complaint, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT complaint_id, room_number, issue_type, description, is_resolved, date_raised
        FROM %s
        ORDER BY date_raised DESC
    `, ComplaintsTable))
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	complaints := make([]Complaint, 0)
	for rows.Next() {
		complaint, scanErr := scanComplaint(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan complaint: %w", scanErr)
		}
		complaints = append(complaints, complaint)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate complaints: %w", err)
	}

	return complaints, nil
}

// ResolveComplaint flags the complaint as resolved. Resolving an already
// resolved complaint is a no-op that still succeeds.
func (s *ComplaintStore) ResolveComplaint(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
        UPDATE %s SET is_resolved = TRUE WHERE complaint_id = $1
    `, ComplaintsTable), id)
	if err != nil {
		return fmt.Errorf("resolve complaint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

// CountOpenComplaints returns the number of unresolved complaints.
func (s *ComplaintStore) CountOpenComplaints(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE NOT is_resolved
    `, ComplaintsTable)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count open complaints: %w", err)
	}
	return count, nil
}

func scanComplaint(row pgx.Row) (Complaint, error) {
	var complaint Complaint
	if err := row.Scan(
		&complaint.ComplaintID, &complaint.RoomNumber, &complaint.IssueType,
		&complaint.Description, &complaint.IsResolved, &complaint.DateRaised,
	); err != nil {
		return Complaint{}, err
	}
	return complaint, nil
}
