package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid возвращается когда подпись токена не сходится
// или срок его действия истек
var ErrTokenInvalid = errors.New("token is invalid or has expired")

// randomAlphabet - алфавит для случайного nonce (заглавные буквы + цифры)
const randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Codec кодирует и проверяет подписанные токены (HS256).
// Чистый над секретом: никакого состояния и обращений к хранилищу.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec создает новый Codec
// secret должен быть криптографически случайной строкой
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess создает access token: claims вызывающего плюс exp = now + accessTTL.
// Claim "exp" вызывающего всегда перезаписывается.
func (c *Codec) IssueAccess(claims map[string]any) (string, error) {
	payload := jwt.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	payload["exp"] = jwt.NewNumericDate(time.Now().Add(c.accessTTL))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// IssueRefresh создает refresh token: exp = now + refreshTTL плюс случайный
// nonce в claim "data". Nonce гарантирует, что два вызова в пределах одной
// секунды никогда не дадут одинаковый токен.
func (c *Codec) IssueRefresh() (string, error) {
	nonce, err := Random(10)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	payload := jwt.MapClaims{
		"exp":  jwt.NewNumericDate(time.Now().Add(c.refreshTTL)),
		"data": nonce,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return signed, nil
}

// Verify проверяет подпись и срок действия токена, возвращает его claims.
// Любая ошибка проверки сворачивается в ErrTokenInvalid.
func (c *Codec) Verify(tokenString string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Random возвращает случайную строку длины n из заглавных латинских букв и цифр
func Random(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = randomAlphabet[int(b)%len(randomAlphabet)]
	}
	return string(buf), nil
}
