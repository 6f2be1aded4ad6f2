// Package auth реализует жизненный цикл сессии: login, refresh, register.
//
// Сервис оркестрирует проверку учетных данных, выпуск токенов через
// token.Codec и хранение единственной активной пары в TokenStorage.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/server/storage"
	"github.com/iudanet/userhub/internal/token"
	"github.com/iudanet/userhub/internal/validation"
)

// ErrInvalidCredentials возвращается при неизвестном username или неверном
// пароле. Наружу не уточняем, что именно не совпало.
var ErrInvalidCredentials = errors.New("invalid username or password")

// TokenPair - выданная пара токенов
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Service orchestrates authentication flows over user and token storage
type Service struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens storage.TokenStorage
	codec  *token.Codec
}

// NewService creates a new auth service
func NewService(logger *slog.Logger, users storage.UserStorage, tokens storage.TokenStorage, codec *token.Codec) *Service {
	return &Service{
		logger: logger,
		users:  users,
		tokens: tokens,
		codec:  codec,
	}
}

// Login проверяет учетные данные и выдает свежую пару токенов.
// Сохранение пары вытесняет любую предыдущую сессию пользователя.
// При неудаче возвращает ErrInvalidCredentials и ничего не выпускает.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.mint(user.ID)
	if err != nil {
		return nil, err
	}

	// Upsert по user_id: старая пара (если была) перестает действовать
	now := time.Now()
	record := &models.AuthToken{
		UserID:    user.ID,
		Access:    pair.Access,
		Refresh:   pair.Refresh,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tokens.SaveAuthToken(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save auth token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return pair, nil
}

// Refresh ротирует пару токенов по действующему refresh token.
//
// Порядок проверок фиксирован: сначала поиск в хранилище, потом проверка
// подписи/срока. Синтаксически валидный, но уже вытесненный токен дает
// storage.ErrTokenNotFound, а не token.ErrTokenInvalid - вызывающий различает
// эти два случая.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	record, err := s.tokens.GetAuthTokenByRefresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if _, err := s.codec.Verify(refreshToken); err != nil {
		return nil, token.ErrTokenInvalid
	}

	pair, err := s.mint(record.UserID)
	if err != nil {
		return nil, err
	}

	// Обе строки заменяются на существующей записи разом - после ротации
	// старый refresh token больше не принимается
	if err := s.tokens.UpdateAuthToken(ctx, record.UserID, pair.Access, pair.Refresh); err != nil {
		return nil, fmt.Errorf("failed to rotate auth token: %w", err)
	}

	s.logger.InfoContext(ctx, "tokens refreshed", slog.String("user_id", record.UserID))

	return pair, nil
}

// Register валидирует входные поля и создает пользователя с bcrypt-хешем
// пароля. Ошибки валидации возвращаются по полям (validation.Errors).
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := validation.ValidateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, validation.Errors{"username": "username already taken"}
		}
		if errors.Is(err, storage.ErrEmailAlreadyExists) {
			return nil, validation.Errors{"email": "email already registered"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return user, nil
}

// mint выпускает новую пару: access с claim user_id, refresh со случайным nonce
func (s *Service) mint(userID string) (*TokenPair, error) {
	access, err := s.codec.IssueAccess(map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.codec.IssueRefresh()
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}
