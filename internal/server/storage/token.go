package storage

import (
	"context"

	"github.com/iudanet/userhub/internal/models"
)

// TokenStorage defines interface for auth token pair persistence.
// At most one pair is stored per user; SaveAuthToken is the enforcement
// point for "one active session per user".
type TokenStorage interface {
	// SaveAuthToken stores the token pair for token.UserID, replacing any
	// existing pair in a single upsert (no window with zero or two pairs)
	SaveAuthToken(ctx context.Context, token *models.AuthToken) error

	// GetAuthTokenByRefresh retrieves the pair by exact refresh token value
	// Returns ErrTokenNotFound if no pair holds this refresh token
	GetAuthTokenByRefresh(ctx context.Context, refresh string) (*models.AuthToken, error)

	// UpdateAuthToken replaces both token strings on the existing row in place
	// (used by refresh rotation, keeps row identity)
	// Returns ErrTokenNotFound if the user has no stored pair
	UpdateAuthToken(ctx context.Context, userID, access, refresh string) error
}
