package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`         // UUID пользователя
	Username     string    `json:"username"`   // уникальный username
	Email        string    `json:"email"`      // уникальный email
	PasswordHash string    `json:"-"`          // bcrypt хеш пароля, наружу не отдается
	LastSeen     time.Time `json:"last_seen"`  // время последнего аутентифицированного запроса
	CreatedAt    time.Time `json:"created_at"` // время создания
}

// AuthToken представляет активную пару токенов пользователя.
// На пользователя хранится ровно одна строка (user_id — первичный ключ),
// поэтому новый login вытесняет предыдущую сессию.
type AuthToken struct {
	UserID    string    `json:"user_id"`    // ID владельца
	Access    string    `json:"access"`     // текущий access token
	Refresh   string    `json:"refresh"`    // текущий refresh token
	CreatedAt time.Time `json:"created_at"` // время первого login
	UpdatedAt time.Time `json:"updated_at"` // время последней ротации
}

// UserProfile представляет публичный профиль пользователя (один к одному с User)
type UserProfile struct {
	ID                string    `json:"id"`                            // UUID профиля
	UserID            string    `json:"user_id"`                       // ID владельца
	Username          string    `json:"username"`                      // username владельца (join из users, не колонка профиля)
	FirstName         string    `json:"first_name"`                    // имя
	LastName          string    `json:"last_name"`                     // фамилия
	Caption           string    `json:"caption"`                       // короткий статус
	About             string    `json:"about"`                         // свободный текст о себе
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"` // ссылка на аватар во внешнем media-сервисе
	CreatedAt         time.Time `json:"created_at"`                    // время создания
	UpdatedAt         time.Time `json:"updated_at"`                    // время последнего обновления
}
