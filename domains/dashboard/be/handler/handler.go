package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aadinathdeepak/pg-management-app/domains/dashboard/be/service"
	"github.com/aadinathdeepak/pg-management-app/platform/go/httpjson"
)

type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.stats)
}

type statsResponse struct {
	TotalRooms     int   `json:"totalRooms"`
	OpenComplaints int   `json:"openComplaints"`
	PendingRent    int64 `json:"pendingRent"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.logger.Error("computing dashboard stats", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.Write(w, http.StatusOK, statsResponse{
		TotalRooms:     stats.TotalRooms,
		OpenComplaints: stats.OpenComplaints,
		PendingRent:    stats.PendingRent,
	})
}
