package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aadinathdeepak/pg-management-app/domains/complaints/be/repo"
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

// ErrNotFound indicates a missing complaint record.
var ErrNotFound = errors.New("complaint not found")

// IssueTypes enumerates the accepted complaint categories.
var IssueTypes = []string{"WiFi", "Plumbing", "Electrical", "Food", "Other"}

// Complaint represents the domain view of a maintenance complaint. RoomNumber
// is free text; complaints have no relationship to rooms beyond it.
type Complaint struct {
	ID          uuid.UUID
	RoomNumber  string
	IssueType   string
	Description string
	IsResolved  bool
	DateRaised  time.Time
}

// CreateInput represents the payload required to raise a complaint.
type CreateInput struct {
	RoomNumber  string
	IssueType   string
	Description string
	IsResolved  bool
	DateRaised  *time.Time
}

// Service defines the business operations for the complaints domain.
type Service interface {
	List(ctx context.Context) ([]Complaint, error)
	Create(ctx context.Context, input CreateInput) (Complaint, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repo.Repository
	now  func() time.Time
}

// New constructs a complaints Service instance backed by the provided repository.
func New(r repo.Repository) Service {
	if r == nil {
		panic("complaints repository is required")
	}
	return &service{repo: r, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]Complaint, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	complaints := make([]Complaint, 0, len(records))
	for _, record := range records {
		complaints = append(complaints, mapComplaint(record))
	}
	return complaints, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (Complaint, error) {
	fieldErrors := FieldErrors{}

	issueType := strings.TrimSpace(input.IssueType)
	if issueType == "" {
		fieldErrors.add("issueType", "issueType is required")
	} else if !validIssueType(issueType) {
		fieldErrors.add("issueType", "issueType must be one of "+strings.Join(IssueTypes, ", "))
	}

	if len(fieldErrors) > 0 {
		return Complaint{}, &ValidationError{Fields: fieldErrors}
	}

	dateRaised := s.now().UTC()
	if input.DateRaised != nil {
		dateRaised = *input.DateRaised
	}

	record, err := s.repo.Create(ctx, persistence.CreateComplaintParams{
		ComplaintID: uuid.New(),
		RoomNumber:  strings.TrimSpace(input.RoomNumber),
		IssueType:   issueType,
		Description: strings.TrimSpace(input.Description),
		IsResolved:  input.IsResolved,
		DateRaised:  dateRaised,
	})
	if err != nil {
		return Complaint{}, err
	}

	return mapComplaint(record), nil
}

func (s *service) Resolve(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrNotFound
	}

	if err := s.repo.Resolve(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrComplaintNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validIssueType(candidate string) bool {
	for _, issueType := range IssueTypes {
		if candidate == issueType {
			return true
		}
	}
	return false
}

func mapComplaint(record persistence.Complaint) Complaint {
	return Complaint{
		ID:          record.ComplaintID,
		RoomNumber:  record.RoomNumber,
		IssueType:   record.IssueType,
		Description: record.Description,
		IsResolved:  record.IsResolved,
		DateRaised:  record.DateRaised,
	}
}

func (f FieldErrors) add(field, message string) {
	if f == nil {
		return
	}
	f[field] = append(f[field], message)
}
