package api

import (
	"context"
	"net/http"

	"bikeshare/internal/entities"
	"bikeshare/internal/logger"

	"go.uber.org/zap"
)

type AdminAPI interface {
	ListBookings(ctx context.Context, from, to, bike string) (*entities.BookingsList, error)
}

type AdminHandler struct {
	Service AdminAPI
	log     *zap.Logger
}

func NewAdminHandler(svc AdminAPI, log *zap.Logger) *AdminHandler {
	return &AdminHandler{Service: svc, log: logger.OrNop(log)}
}

// ListBookings serves GET /admin/bookings?from&to&bike.
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.Service.ListBookings(r.Context(), q.Get("from"), q.Get("to"), q.Get("bike"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
