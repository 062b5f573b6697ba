package handler

import (
	"encoding/json"
	"net/http"

	"estate-marketplace/internal/middleware"
	"estate-marketplace/internal/usecase"

	"go.uber.org/zap"
)

type AuthHandler struct {
	usecase *usecase.AuthUsecase
	logger  *zap.Logger
}

func NewAuthHandler(uc *usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{usecase: uc, logger: logger}
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, err := h.usecase.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("sign-up failed", zap.String("email", req.Email), zap.Error(err))
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.usecase.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("sign-in failed", zap.String("email", req.Email), zap.Error(err))
		writeUsecaseError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "user has been signed out"})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
