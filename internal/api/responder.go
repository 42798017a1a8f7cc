package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "bikeshare/internal/errors"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an *apperrors.HTTPError to its status; anything else is a 500.
// Internal causes are logged with the request id and never echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var httpErr *apperrors.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = apperrors.ErrInternal(err)
	}
	if httpErr.Code >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, httpErr.Code, ErrorResponse{Error: httpErr.Message, Kind: string(httpErr.Kind)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
