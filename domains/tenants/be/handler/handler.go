package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aadinathdeepak/pg-management-app/domains/tenants/be/ledger"
	"github.com/aadinathdeepak/pg-management-app/domains/tenants/be/service"
	"github.com/aadinathdeepak/pg-management-app/platform/go/httpjson"
	platformlogging "github.com/aadinathdeepak/pg-management-app/platform/go/logging"
)

const dateLayout = "2006-01-02"

// Handler wires the tenants service to its HTTP routes.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("tenants service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the tenant routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tenants", h.list)
	r.Post("/tenants/add", h.add)
	r.Post("/tenants/pay", h.pay)
	r.Post("/tenants/toggle-rent", h.toggleRent)
	r.Put("/tenants/{id}", h.update)
	r.Delete("/tenants/{id}", h.delete)
}

type addRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	RoomNumber    string `json:"roomNumber"`
	JoinDate      string `json:"joinDate"`
	DepositAmount int64  `json:"depositAmount"`
	RentAmount    int64  `json:"rentAmount"`
}

type updateRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	RentAmount    *int64  `json:"rentAmount"`
	DepositAmount *int64  `json:"depositAmount"`
}

type monthRequest struct {
	TenantID string `json:"tenantId"`
	Month    string `json:"month"`
}

type apiRoomRef struct {
	ID         string `json:"id"`
	RoomNumber string `json:"roomNumber"`
	Price      int64  `json:"price"`
}

type apiRentRecord struct {
	Month       string     `json:"month"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}

type apiTenant struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Room          *apiRoomRef     `json:"room,omitempty"`
	RentAmount    int64           `json:"rentAmount"`
	DepositAmount int64           `json:"depositAmount"`
	TotalDues     int64           `json:"totalDues"`
	JoinDate      string          `json:"joinDate"`
	RentHistory   []apiRentRecord `json:"rentHistory"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]apiTenant, 0, len(tenants))
	for _, tenant := range tenants {
		items = append(items, toAPITenant(tenant))
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "joinDate must be formatted as YYYY-MM-DD")
		return
	}

	created, err := h.svc.Add(r.Context(), service.AddInput{
		Name:          req.Name,
		Phone:         req.Phone,
		RoomNumber:    req.RoomNumber,
		JoinDate:      joinDate,
		DepositAmount: req.DepositAmount,
		RentAmount:    req.RentAmount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, toAPITenant(created))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "Tenant not found")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, service.UpdateInput{
		Name:          req.Name,
		Phone:         req.Phone,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpjson.Write(w, http.StatusOK, toAPITenant(updated))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "Tenant not found")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	httpjson.WriteSuccess(w)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, month, ok := h.decodeMonthRequest(w, r)
	if !ok {
		return
	}

	if err := h.svc.Pay(r.Context(), id, month); err != nil {
		h.writeError(w, r, err)
		return
	}

	httpjson.WriteSuccess(w)
}

func (h *Handler) toggleRent(w http.ResponseWriter, r *http.Request) {
	id, month, ok := h.decodeMonthRequest(w, r)
	if !ok {
		return
	}

	if err := h.svc.ToggleRent(r.Context(), id, month); err != nil {
		h.writeError(w, r, err)
		return
	}

	httpjson.WriteSuccess(w)
}

func (h *Handler) decodeMonthRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	var req monthRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return uuid.Nil, "", false
	}

	id, err := uuid.Parse(req.TenantID)
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "Tenant not found")
		return uuid.Nil, "", false
	}

	return id, req.Month, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := platformlogging.FromRequest(r, h.logger)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpjson.WriteError(w, http.StatusBadRequest, validationMessage(validationErr))
	case errors.Is(err, service.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "Tenant not found")
	case errors.Is(err, service.ErrRoomNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "Room not found")
	case errors.Is(err, ledger.ErrMonthOutOfRange):
		httpjson.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("tenants request failed", zap.Error(err))
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

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func toAPITenant(tenant service.Tenant) apiTenant {
	out := apiTenant{
		ID:            tenant.ID.String(),
		Name:          tenant.Name,
		Phone:         tenant.Phone,
		RentAmount:    tenant.RentAmount,
		DepositAmount: tenant.DepositAmount,
		TotalDues:     tenant.TotalDues,
		JoinDate:      tenant.JoinDate.Format(dateLayout),
		RentHistory:   make([]apiRentRecord, 0, len(tenant.RentHistory)),
	}
	if tenant.Room != nil {
		out.Room = &apiRoomRef{
			ID:         tenant.Room.ID.String(),
			RoomNumber: tenant.Room.RoomNumber,
			Price:      tenant.Room.Price,
		}
	}
	for _, record := range tenant.RentHistory {
		out.RentHistory = append(out.RentHistory, apiRentRecord{
			Month:       record.Month,
			Amount:      record.Amount,
			Status:      string(record.Status),
			PaymentDate: record.PaymentDate,
		})
	}
	return out
}
