package api

// ProfileUser представляет владельца профиля в ответах API
type ProfileUser struct {
	ID       string `json:"id"`       // UUID пользователя
	Username string `json:"username"` // username пользователя
}

// ProfileRequest представляет запрос на создание профиля
type ProfileRequest struct {
	FirstName         string `json:"first_name"`                    // имя
	LastName          string `json:"last_name"`                     // фамилия
	Caption           string `json:"caption"`                       // короткий статус
	About             string `json:"about"`                         // свободный текст о себе
	ProfilePictureURL string `json:"profile_picture_url,omitempty"` // ссылка на загруженный аватар
}

// ProfileUpdateRequest представляет частичное обновление профиля.
// nil-поля не трогаются.
type ProfileUpdateRequest struct {
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Caption           *string `json:"caption,omitempty"`
	About             *string `json:"about,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// ProfileResponse представляет профиль в ответах API
type ProfileResponse struct {
	ID                string      `json:"id"`
	User              ProfileUser `json:"user"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Caption           string      `json:"caption"`
	About             string      `json:"about"`
	ProfilePictureURL string      `json:"profile_picture_url,omitempty"`
}

// ProfileListResponse представляет страницу результатов поиска профилей
type ProfileListResponse struct {
	Count    int               `json:"count"`     // общее число совпадений
	Page     int               `json:"page"`      // номер страницы (с 1)
	PageSize int               `json:"page_size"` // размер страницы
	Results  []ProfileResponse `json:"results"`   // профили текущей страницы
}
