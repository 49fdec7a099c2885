package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aadinathdeepak/pg-management-app/domains/rooms/be/service"
	"github.com/aadinathdeepak/pg-management-app/platform/go/httpjson"
	platformlogging "github.com/aadinathdeepak/pg-management-app/platform/go/logging"
)

// Handler wires the rooms service to its HTTP routes.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("rooms service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the room routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/rooms", h.list)
	r.Post("/rooms", h.create)
}

type createRequest struct {
	RoomNumber string `json:"roomNumber"`
	Capacity   int    `json:"capacity"`
	Price      int64  `json:"price"`
}

type apiOccupant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	TotalDues int64  `json:"totalDues"`
}

type apiRoom struct {
	ID         string        `json:"id"`
	RoomNumber string        `json:"roomNumber"`
	Capacity   int           `json:"capacity"`
	Price      int64         `json:"price"`
	Occupants  []apiOccupant `json:"occupants"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]apiRoom, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, toAPIRoom(room))
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
		RoomNumber: req.RoomNumber,
		Capacity:   req.Capacity,
		Price:      req.Price,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, toAPIRoom(created))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := platformlogging.FromRequest(r, h.logger)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpjson.WriteError(w, http.StatusBadRequest, validationMessage(validationErr))
	case errors.Is(err, service.ErrConflict):
		httpjson.WriteError(w, http.StatusConflict, "room number already exists")
	default:
		logger.Error("rooms request failed", zap.Error(err))
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

func toAPIRoom(room service.Room) apiRoom {
	out := apiRoom{
		ID:         room.ID.String(),
		RoomNumber: room.RoomNumber,
		Capacity:   room.Capacity,
		Price:      room.Price,
		Occupants:  make([]apiOccupant, 0, len(room.Occupants)),
	}
	for _, occupant := range room.Occupants {
		out.Occupants = append(out.Occupants, apiOccupant{
			ID:        occupant.ID.String(),
			Name:      occupant.Name,
			Phone:     occupant.Phone,
			TotalDues: occupant.TotalDues,
		})
	}
	return out
}
