package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

type mockRepository struct {
	createFn  func(ctx context.Context, params persistence.CreateComplaintParams) (persistence.Complaint, error)
	listFn    func(ctx context.Context) ([]persistence.Complaint, error)
	resolveFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepository) Create(ctx context.Context, params persistence.CreateComplaintParams) (persistence.Complaint, error) {
	if m.createFn == nil {
		panic("createFn not configured")
	}
	return m.createFn(ctx, params)
}

func (m *mockRepository) List(ctx context.Context) ([]persistence.Complaint, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx)
}

func (m *mockRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	if m.resolveFn == nil {
		panic("resolveFn not configured")
	}
	return m.resolveFn(ctx, id)
}

func TestCreateRequiresKnownIssueType(t *testing.T) {
	t.Parallel()

	svc := New(&mockRepository{})

	_, err := svc.Create(context.Background(), CreateInput{RoomNumber: "101"})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Contains(t, validationErr.Fields, "issueType")

	_, err = svc.Create(context.Background(), CreateInput{RoomNumber: "101", IssueType: "Noise"})
	require.True(t, errors.As(err, &validationErr))
	require.Contains(t, validationErr.Fields, "issueType")
}

func TestCreateDefaultsDateRaised(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, time.December, 1, 9, 0, 0, 0, time.UTC)
	repository := &mockRepository{
		createFn: func(ctx context.Context, params persistence.CreateComplaintParams) (persistence.Complaint, error) {
			require.Equal(t, "WiFi", params.IssueType)
			require.Equal(t, fixed, params.DateRaised)
			require.NotEqual(t, uuid.Nil, params.ComplaintID)

			return persistence.Complaint{
				ComplaintID: params.ComplaintID,
				RoomNumber:  params.RoomNumber,
				IssueType:   params.IssueType,
				Description: params.Description,
				DateRaised:  params.DateRaised,
			}, nil
		},
	}

	svc := &service{repo: repository, now: func() time.Time { return fixed }}
	created, err := svc.Create(context.Background(), CreateInput{
		RoomNumber:  "101",
		IssueType:   "WiFi",
		Description: "Signal weak",
	})
	require.NoError(t, err)
	require.False(t, created.IsResolved)
	require.Equal(t, fixed, created.DateRaised)
}

func TestCreateHonorsProvidedDateRaised(t *testing.T) {
	t.Parallel()

	raised := time.Date(2024, time.November, 20, 18, 0, 0, 0, time.UTC)
	repository := &mockRepository{
		createFn: func(ctx context.Context, params persistence.CreateComplaintParams) (persistence.Complaint, error) {
			require.Equal(t, raised, params.DateRaised)
			return persistence.Complaint{ComplaintID: params.ComplaintID, DateRaised: params.DateRaised, IssueType: params.IssueType}, nil
		},
	}

	svc := New(repository)
	_, err := svc.Create(context.Background(), CreateInput{IssueType: "Plumbing", DateRaised: &raised})
	require.NoError(t, err)
}

func TestResolveMapsNotFound(t *testing.T) {
	t.Parallel()

	repository := &mockRepository{
		resolveFn: func(ctx context.Context, id uuid.UUID) error {
			return persistence.ErrComplaintNotFound
		},
	}

	svc := New(repository)
	require.ErrorIs(t, svc.Resolve(context.Background(), uuid.New()), ErrNotFound)
	require.ErrorIs(t, svc.Resolve(context.Background(), uuid.Nil), ErrNotFound)
}
