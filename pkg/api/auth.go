package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"` // username пользователя
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль в открытом виде (хешируется на сервере)
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	Success string `json:"success"` // сообщение об успешной регистрации
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде
}

// RefreshRequest представляет запрос на ротацию пары токенов
type RefreshRequest struct {
	Refresh string `json:"refresh"` // действующий refresh token
}

// TokenResponse представляет ответ с парой токенов
type TokenResponse struct {
	Access  string `json:"access"`  // JWT access token (5 минут)
	Refresh string `json:"refresh"` // JWT refresh token (365 дней)
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"` // описание ошибки
}

// ValidationErrorResponse представляет ответ с ошибками валидации по полям
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"` // поле -> сообщение
}
