package handler

import (
	"encoding/json"
	"net/http"

	"estate-marketplace/internal/middleware"
	"estate-marketplace/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	usecase *usecase.UserUsecase
	logger  *zap.Logger
}

func NewUserHandler(uc *usecase.UserUsecase, logger *zap.Logger) *UserHandler {
	return &UserHandler{usecase: uc, logger: logger}
}

type userUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Avatar   *string `json:"avatar"`
}

func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")

	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.usecase.UpdateUser(r.Context(), id, actorID, usecase.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		h.logger.Warn("update user failed", zap.String("user_id", id), zap.String("actor_id", actorID), zap.Error(err))
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDeleteUser removes the account and clears the session cookie.
func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.usecase.DeleteUser(r.Context(), id, actorID); err != nil {
		h.logger.Warn("delete user failed", zap.String("user_id", id), zap.String("actor_id", actorID), zap.Error(err))
		writeUsecaseError(w, err)
		return
	}

	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "message": "user has been deleted"})
}

// HandleGetUser serves the contact lookup used by the listing contact panel.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.usecase.GetUser(r.Context(), id)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
