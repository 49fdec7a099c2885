package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aadinathdeepak/pg-management-app/domains/complaints/be/service"
)

type mockService struct {
	listFn    func(ctx context.Context) ([]service.Complaint, error)
	createFn  func(ctx context.Context, input service.CreateInput) (service.Complaint, error)
	resolveFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockService) List(ctx context.Context) ([]service.Complaint, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx)
}

func (m *mockService) Create(ctx context.Context, input service.CreateInput) (service.Complaint, error) {
	if m.createFn == nil {
		panic("createFn not configured")
	}
	return m.createFn(ctx, input)
}

func (m *mockService) Resolve(ctx context.Context, id uuid.UUID) error {
	if m.resolveFn == nil {
		panic("resolveFn not configured")
	}
	return m.resolveFn(ctx, id)
}

func newTestRouter(t *testing.T, svc service.Service) http.Handler {
	t.Helper()

	r := chi.NewRouter()
	New(svc, zaptest.NewLogger(t)).Register(r)
	return r
}

func TestListComplaints(t *testing.T) {
	t.Parallel()

	complaintID := uuid.New()
	raised := time.Date(2024, time.December, 10, 9, 30, 0, 0, time.UTC)
	svc := &mockService{
		listFn: func(ctx context.Context) ([]service.Complaint, error) {
			return []service.Complaint{{
				ID:          complaintID,
				RoomNumber:  "101",
				IssueType:   "WiFi",
				Description: "Router keeps dropping connection",
				DateRaised:  raised,
			}}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/complaints", nil)
	newTestRouter(t, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, complaintID.String(), body[0]["id"])
	require.Equal(t, "WiFi", body[0]["issueType"])
	require.Equal(t, false, body[0]["isResolved"])
}

func TestCreateComplaint(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		createFn: func(ctx context.Context, input service.CreateInput) (service.Complaint, error) {
			require.Equal(t, "Plumbing", input.IssueType)
			return service.Complaint{
				ID:          uuid.New(),
				RoomNumber:  input.RoomNumber,
				IssueType:   input.IssueType,
				Description: input.Description,
				DateRaised:  time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}

	payload := `{"roomNumber":"102","issueType":"Plumbing","description":"Leaking tap"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/complaints", strings.NewReader(payload))
	newTestRouter(t, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "102", body["roomNumber"])
}

func TestCreateComplaintInvalidIssueType(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		createFn: func(ctx context.Context, input service.CreateInput) (service.Complaint, error) {
			return service.Complaint{}, &service.ValidationError{Fields: service.FieldErrors{
				"issueType": {"issueType must be one of WiFi, Plumbing, Electrical, Food, Other"},
			}}
		},
	}

	payload := `{"roomNumber":"102","issueType":"Noise"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/complaints", strings.NewReader(payload))
	newTestRouter(t, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveComplaint(t *testing.T) {
	t.Parallel()

	complaintID := uuid.New()
	svc := &mockService{
		resolveFn: func(ctx context.Context, id uuid.UUID) error {
			require.Equal(t, complaintID, id)
			return nil
		},
	}

	payload := fmt.Sprintf(`{"id":%q}`, complaintID)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/complaints/resolve", strings.NewReader(payload))
	newTestRouter(t, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestResolveComplaintNotFound(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		resolveFn: func(ctx context.Context, id uuid.UUID) error {
			return service.ErrNotFound
		},
	}

	payload := fmt.Sprintf(`{"id":%q}`, uuid.New())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/complaints/resolve", strings.NewReader(payload))
	newTestRouter(t, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Complaint not found"}`, rec.Body.String())
}

func TestResolveComplaintBadID(t *testing.T) {
	t.Parallel()

	svc := &mockService{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/complaints/resolve", strings.NewReader(`{"id":"nope"}`))
	newTestRouter(t, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
