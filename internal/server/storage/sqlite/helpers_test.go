package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/userhub/internal/models"
)

// setupTestStorage создает in-memory SQLite с прогнанными миграциями
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	return s, func() {
		_ = s.Close()
	}
}

// createTestUser создает пользователя и возвращает его ID
func createTestUser(t *testing.T, ctx context.Context, s *Storage, username string) string {
	t.Helper()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@google.com",
		PasswordHash: "bcrypt-hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	return user.ID
}

// createTestProfile создает профиль пользователя и возвращает его ID
func createTestProfile(t *testing.T, ctx context.Context, s *Storage, userID, firstName, lastName string) string {
	t.Helper()

	now := time.Now()
	profile := &models.UserProfile{
		ID:        uuid.New().String(),
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Caption:   "it's all about testing",
		About:     "I'm a developer",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateProfile(ctx, profile))

	return profile.ID
}
