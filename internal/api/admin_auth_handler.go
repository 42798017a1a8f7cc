package api

import (
	"errors"
	"net/http"

	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/logger"
	"bikeshare/internal/repository"
	"bikeshare/internal/service"

	"go.uber.org/zap"
)

type AdminAuthHandler struct {
	service service.AdminAuthService
	log     *zap.Logger
}

func NewAdminAuthHandler(svc service.AdminAuthService, log *zap.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc, log: logger.OrNop(log)}
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, apperrors.ErrValidation("invalid request body"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Error("admin login failed", zap.Error(err))
		}
		writeError(w, r, h.log, apperrors.ErrUnauthorized("invalid credentials"))
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *AdminAuthHandler) CreateUserAdmin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, apperrors.ErrValidation("invalid request body"))
		return
	}

	if err := h.service.CreateAdmin(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, repository.ErrAdminExists) {
			writeError(w, r, h.log, apperrors.ErrConflict("admin already exists"))
			return
		}
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Admin registered successfully"})
}
