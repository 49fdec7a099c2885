package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aadinathdeepak/pg-management-app/domains/complaints/be/service"
	"github.com/aadinathdeepak/pg-management-app/platform/go/httpjson"
	platformlogging "github.com/aadinathdeepak/pg-management-app/platform/go/logging"
)

// Handler wires the complaints service to its HTTP routes.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("complaints service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the complaint routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/complaints", h.list)
	r.Post("/complaints", h.create)
	r.Post("/complaints/resolve", h.resolve)
}

type createRequest struct {
	RoomNumber  string     `json:"roomNumber"`
	IssueType   string     `json:"issueType"`
	Description string     `json:"description"`
	IsResolved  bool       `json:"isResolved"`
	DateRaised  *time.Time `json:"dateRaised"`
}

type resolveRequest struct {
	ID string `json:"id"`
}

type apiComplaint struct {
	ID          string    `json:"id"`
	RoomNumber  string    `json:"roomNumber"`
	IssueType   string    `json:"issueType"`
	Description string    `json:"description"`
	IsResolved  bool      `json:"isResolved"`
	DateRaised  time.Time `json:"dateRaised"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]apiComplaint, 0, len(complaints))
	for _, complaint := range complaints {
		items = append(items, toAPIComplaint(complaint))
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), service.CreateInput{
		RoomNumber:  req.RoomNumber,
		IssueType:   req.IssueType,
		Description: req.Description,
		IsResolved:  req.IsResolved,
		DateRaised:  req.DateRaised,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, toAPIComplaint(created))
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "Complaint not found")
		return
	}

	if err := h.svc.Resolve(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	httpjson.WriteSuccess(w)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := platformlogging.FromRequest(r, h.logger)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpjson.WriteError(w, http.StatusBadRequest, validationMessage(validationErr))
	case errors.Is(err, service.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "Complaint not found")
	default:
		logger.Error("complaints request failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func validationMessage(err *service.ValidationError) string {
	for field, messages := range err.Fields {
		if len(messages) > 0 {
			return field + ": " + messages[0]
		}
	}
	return err.Error()
}

func toAPIComplaint(complaint service.Complaint) apiComplaint {
	return apiComplaint{
		ID:          complaint.ID.String(),
		RoomNumber:  complaint.RoomNumber,
		IssueType:   complaint.IssueType,
		Description: complaint.Description,
		IsResolved:  complaint.IsResolved,
		DateRaised:  complaint.DateRaised,
	}
}
