package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/search"
	"github.com/iudanet/userhub/internal/server/storage"
)

// profileColumns - колонки профиля с join на users, алиасы совпадают
// со storage.ProfileSearchFields
const profileColumns = `
	p.id, p.user_id, u.username, p.first_name, p.last_name,
	p.caption, p.about, p.profile_picture_url, p.created_at, p.updated_at
`

// CreateProfile creates a profile for profile.UserID
func (s *Storage) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles
			(id, user_id, first_name, last_name, caption, about, profile_picture_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Caption,
		profile.About,
		profile.ProfilePictureURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		// Один профиль на пользователя
		if strings.Contains(err.Error(), "UNIQUE constraint failed: user_profiles.user_id") {
			return storage.ErrProfileAlreadyExists
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// GetProfileByID retrieves profile by its ID
func (s *Storage) GetProfileByID(ctx context.Context, profileID string) (*models.UserProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = ?
	`

	return s.scanProfile(s.db.QueryRowContext(ctx, query, profileID))
}

// GetProfileByUserID retrieves the profile owned by userID
func (s *Storage) GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ?
	`

	return s.scanProfile(s.db.QueryRowContext(ctx, query, userID))
}

// UpdateProfile persists the mutable fields of an existing profile
func (s *Storage) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET first_name = ?, last_name = ?, caption = ?, about = ?,
			profile_picture_url = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		profile.FirstName,
		profile.LastName,
		profile.Caption,
		profile.About,
		profile.ProfilePictureURL,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrProfileNotFound
	}

	return nil
}

// SearchProfiles executes the search filter over the profile directory.
// Профиль самого запрашивающего в выдачу не попадает.
func (s *Storage) SearchProfiles(ctx context.Context, q *search.Query, excludeUserID string, limit, offset int) ([]*models.UserProfile, int, error) {
	where := "p.user_id != ?"
	args := []any{excludeUserID}

	if clause, clauseArgs := q.SQL(); clause != "" {
		where += " AND " + clause
		args = append(args, clauseArgs...)
	}

	countQuery := `
		SELECT count(*)
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE ` + where

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	listQuery := `
		SELECT ` + profileColumns + `
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE ` + where + `
		ORDER BY p.created_at, p.id
		LIMIT ? OFFSET ?
	`

	listArgs := append(append([]any{}, args...), limit, offset)

	rows, err := s.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var profiles []*models.UserProfile

	for rows.Next() {
		profile := &models.UserProfile{}
		if err := scanProfileRow(rows, profile); err != nil {
			return nil, 0, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return profiles, total, nil
}

// scanProfile читает одну строку профиля
func (s *Storage) scanProfile(row *sql.Row) (*models.UserProfile, error) {
	profile := &models.UserProfile{}

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Username,
		&profile.FirstName,
		&profile.LastName,
		&profile.Caption,
		&profile.About,
		&profile.ProfilePictureURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// scanProfileRow читает профиль из курсора выборки
func scanProfileRow(rows *sql.Rows, profile *models.UserProfile) error {
	return rows.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Username,
		&profile.FirstName,
		&profile.LastName,
		&profile.Caption,
		&profile.About,
		&profile.ProfilePictureURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}
