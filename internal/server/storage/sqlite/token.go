package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/server/storage"
)

// SaveAuthToken stores the token pair for a user, replacing any existing one.
// Один upsert по user_id: нет окна, где у пользователя ноль или две пары.
func (s *Storage) SaveAuthToken(ctx context.Context, token *models.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (user_id, access, refresh, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			access = excluded.access,
			refresh = excluded.refresh,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		token.UserID,
		token.Access,
		token.Refresh,
		token.CreatedAt,
		token.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save auth token: %w", err)
	}

	return nil
}

// GetAuthTokenByRefresh retrieves the token pair by exact refresh token value
func (s *Storage) GetAuthTokenByRefresh(ctx context.Context, refresh string) (*models.AuthToken, error) {
	query := `
		SELECT user_id, access, refresh, created_at, updated_at
		FROM auth_tokens
		WHERE refresh = ?
	`

	token := &models.AuthToken{}

	err := s.db.QueryRowContext(ctx, query, refresh).Scan(
		&token.UserID,
		&token.Access,
		&token.Refresh,
		&token.CreatedAt,
		&token.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get auth token: %w", err)
	}

	return token, nil
}

// UpdateAuthToken replaces both token strings on the existing row in place
func (s *Storage) UpdateAuthToken(ctx context.Context, userID, access, refresh string) error {
	query := `
		UPDATE auth_tokens
		SET access = ?, refresh = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query, access, refresh, userID)
	if err != nil {
		return fmt.Errorf("failed to update auth token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTokenNotFound
	}

	return nil
}
