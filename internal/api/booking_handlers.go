package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"bikeshare/internal/entities"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/logger"
	"bikeshare/internal/service"
	"bikeshare/internal/utils"

	"go.uber.org/zap"
)

type BookingAPI interface {
	Book(ctx context.Context, req entities.BookingRequest) error
	Availability(ctx context.Context, bike string, year, month int) (*entities.MonthAvailability, error)
	AvailabilityAll(ctx context.Context) (*entities.WindowAvailability, error)
}

type BookingHandler struct {
	Service BookingAPI
	log     *zap.Logger
}

func NewBookingHandler(svc BookingAPI, log *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, log: logger.OrNop(log)}
}

// Availability serves GET /api/availability?bike&year&month and GET /api/availability?all=1.
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("all") != "" {
		res, err := h.Service.AvailabilityAll(r.Context())
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	year, okYear := optionalInt(q.Get("year"))
	month, okMonth := optionalInt(q.Get("month"))
	if !okYear || !okMonth {
		writeError(w, r, h.log, apperrors.ErrValidation(service.MsgInvalidMonth))
		return
	}
	res, err := h.Service.Availability(r.Context(), q.Get("bike"), year, month)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Book serves POST /api/book.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, apperrors.ErrValidation("invalid request body"))
		return
	}
	if err := h.Service.Book(r.Context(), req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.BookingResponse{OK: true})
}

// Bikes serves GET /api/bikes.
func (h *BookingHandler) Bikes(w http.ResponseWriter, r *http.Request) {
	bikes := utils.Bikes()
	out := make([]entities.BikeInfo, 0, len(bikes))
	for _, b := range bikes {
		out = append(out, entities.BikeInfo{Slug: b.Slug, Name: b.Name, Location: b.Location})
	}
	writeJSON(w, http.StatusOK, out)
}

// optionalInt treats an empty parameter as zero.
func optionalInt(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
