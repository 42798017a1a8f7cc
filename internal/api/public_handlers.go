package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bikeshare/internal/entities"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/logger"
	"bikeshare/internal/service"
	"bikeshare/internal/utils"

	"go.uber.org/zap"
)

type LeaderboardAPI interface {
	TopBikers(ctx context.Context, month string, limit int) (*entities.TopBikersResponse, error)
}

type EmailComposer interface {
	Compose(notice entities.BookingNotice) (service.EmailMessage, error)
}

type PublicHandler struct {
	leaderboard LeaderboardAPI
	composer    EmailComposer
	now         func() time.Time
	log         *zap.Logger
}

func NewPublicHandler(leaderboard LeaderboardAPI, composer EmailComposer, now func() time.Time, log *zap.Logger) *PublicHandler {
	if now == nil {
		now = time.Now
	}
	return &PublicHandler{leaderboard: leaderboard, composer: composer, now: now, log: logger.OrNop(log)}
}

// TopBikers serves GET /api/bikers?limit&month.
func (h *PublicHandler) TopBikers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	res, err := h.leaderboard.TopBikers(r.Context(), q.Get("month"), limit)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PreviewEmail serves GET /api/preview-email and renders the confirmation as HTML.
func (h *PublicHandler) PreviewEmail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	notice := entities.BookingNotice{
		Kind:  entities.NoticeConfirmation,
		Bike:  utils.NormalizeBike(q.Get("bike")),
		Day:   q.Get("day"),
		Email: q.Get("email"),
	}
	if notice.Day == "" {
		notice.Day = utils.FormatDay(h.now().UTC())
	}
	if notice.Email == "" {
		notice.Email = "user@stanford.edu"
	}
	if q.Get("kind") == string(entities.NoticeReminder) {
		notice.Kind = entities.NoticeReminder
	}

	msg, err := h.composer.Compose(notice)
	if err != nil {
		writeError(w, r, h.log, apperrors.ErrValidation(service.MsgInvalidDate))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg.HTML))
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
