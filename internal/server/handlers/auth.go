package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/userhub/internal/auth"
	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/server/storage"
	"github.com/iudanet/userhub/internal/token"
	"github.com/iudanet/userhub/internal/validation"
	"github.com/iudanet/userhub/pkg/api"
)

// AuthService определяет интерфейс сервиса аутентификации,
// который нужен handler'ам
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Register(ctx context.Context, username, email, password string) (*models.User, error)
}

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	logger *slog.Logger
	auth   AuthService
}

// NewAuthHandler создает новый handler для аутентификации
func NewAuthHandler(logger *slog.Logger, authService AuthService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   authService,
	}
}

// Login обрабатывает POST /user/login
// Проверка учетных данных и выдача пары токенов
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		sendError(h.logger, w, "username and password are required", http.StatusBadRequest)
		return
	}

	pair, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.WarnContext(ctx, "login failed", slog.String("username", req.Username))
			sendError(h.logger, w, "Invalid username or password", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "login error", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.TokenResponse{Access: pair.Access, Refresh: pair.Refresh}, http.StatusOK)
}

// Register обрабатывает POST /user/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.auth.Register(ctx, req.Username, req.Email, req.Password); err != nil {
		// Ошибки валидации отдаем по полям
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			h.logger.WarnContext(ctx, "registration validation failed",
				slog.String("username", req.Username),
				slog.Int("fields", len(verrs)))
			sendJSON(h.logger, w, api.ValidationErrorResponse{Errors: verrs}, http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "registration error", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.RegisterResponse{Success: "User created."}, http.StatusCreated)
}

// Refresh обрабатывает POST /user/refresh
// Ротация пары токенов по refresh token.
// Отсутствующий в хранилище токен -> 400 "refresh token not found",
// найденный, но невалидный/истекший -> 401 "Token is invalid or has expired".
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode refresh request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Refresh == "" {
		sendError(h.logger, w, "refresh token is required", http.StatusBadRequest)
		return
	}

	pair, err := h.auth.Refresh(ctx, req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTokenNotFound):
			h.logger.WarnContext(ctx, "refresh token not found")
			sendError(h.logger, w, "refresh token not found", http.StatusBadRequest)
		case errors.Is(err, token.ErrTokenInvalid):
			h.logger.WarnContext(ctx, "refresh token invalid or expired")
			sendError(h.logger, w, "Token is invalid or has expired", http.StatusUnauthorized)
		default:
			h.logger.ErrorContext(ctx, "refresh error", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	sendJSON(h.logger, w, api.TokenResponse{Access: pair.Access, Refresh: pair.Refresh}, http.StatusOK)
}
