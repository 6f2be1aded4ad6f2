package storage

import (
	"context"

	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/search"
)

// ProfileSearchFields - поля каталога, по которым ищет свободный запрос.
// Порядок фиксирован, чтобы SQL фильтра рендерился стабильно.
// Алиасы обязаны совпадать с теми, что использует реализация SearchProfiles
// (u - users, p - user_profiles).
var ProfileSearchFields = []string{"u.username", "p.first_name", "p.last_name"}

// ProfileStorage defines interface for user profile persistence and search
type ProfileStorage interface {
	// CreateProfile creates a profile for profile.UserID
	// Returns ErrProfileAlreadyExists if the user already has one
	CreateProfile(ctx context.Context, profile *models.UserProfile) error

	// GetProfileByID retrieves profile by its ID
	// Returns ErrProfileNotFound if profile doesn't exist
	GetProfileByID(ctx context.Context, profileID string) (*models.UserProfile, error)

	// GetProfileByUserID retrieves the profile owned by userID
	// Returns ErrProfileNotFound if profile doesn't exist
	GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error)

	// UpdateProfile persists the mutable fields of an existing profile
	// Returns ErrProfileNotFound if profile doesn't exist
	UpdateProfile(ctx context.Context, profile *models.UserProfile) error

	// SearchProfiles executes the search filter over username/first_name/last_name,
	// excluding the requesting user's own profile, ordered by creation time.
	// Returns the page of matches plus the total match count.
	SearchProfiles(ctx context.Context, q *search.Query, excludeUserID string, limit, offset int) ([]*models.UserProfile, int, error)
}
