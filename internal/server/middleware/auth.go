package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/userhub/internal/server/handlers"
	"github.com/iudanet/userhub/internal/server/storage"
	"github.com/iudanet/userhub/internal/token"
)

// AuthMiddleware создает middleware для проверки access token.
// Токен проверяется через codec, владелец подгружается из хранилища,
// и его last_seen обновляется на каждом аутентифицированном запросе.
func AuthMiddleware(logger *slog.Logger, codec *token.Codec, users storage.UserStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header")
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("Invalid Authorization header format")
				http.Error(w, "Unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			// Валидируем токен
			claims, err := codec.Verify(parts[1])
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				logger.Warn("Access token without user_id claim")
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			// Владелец должен существовать
			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				logger.Warn("Token owner not found", "user_id", userID)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			// Обновляем присутствие; сбой не валит запрос
			if err := users.UpdateLastSeen(r.Context(), user.ID, time.Now()); err != nil {
				logger.Warn("failed to update last_seen", "user_id", user.ID, "error", err)
			}

			// Добавляем данные из токена в контекст
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, user.ID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, user.Username)

			logger.Debug("User authenticated", "user_id", user.ID, "username", user.Username)

			// Передаем запрос дальше с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
