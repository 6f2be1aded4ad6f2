package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-tokens"

func newTestCodec() *Codec {
	return NewCodec(testSecret, 5*time.Minute, 365*24*time.Hour)
}

func TestRandom(t *testing.T) {
	rand1, err := Random(10)
	require.NoError(t, err)
	rand2, err := Random(10)
	require.NoError(t, err)
	rand3, err := Random(15)
	require.NoError(t, err)

	// Длина строго равна запрошенной
	assert.Len(t, rand1, 10)
	assert.Len(t, rand2, 10)
	assert.Len(t, rand3, 15)

	// Два вызова с одинаковой длиной не совпадают
	assert.NotEqual(t, rand1, rand2)

	// Только символы алфавита
	for _, r := range rand1 + rand2 + rand3 {
		assert.Contains(t, randomAlphabet, string(r))
	}
}

func TestCodec_IssueAccess(t *testing.T) {
	codec := newTestCodec()

	tokenString, err := codec.IssueAccess(map[string]any{"user_id": "user-1"})
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	// Компактный JWT: header.payload.signature
	assert.Len(t, strings.Split(tokenString, "."), 3)

	claims, err := codec.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])

	// exp выставлен кодеком: примерно now + 5 минут
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp.Time, 5*time.Second)
}

func TestCodec_IssueAccess_OverridesCallerExp(t *testing.T) {
	codec := newTestCodec()

	// Попытка вызывающего подсунуть свой exp игнорируется
	tokenString, err := codec.IssueAccess(map[string]any{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	claims, err := codec.Verify(tokenString)
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
}

func TestCodec_IssueRefresh(t *testing.T) {
	codec := newTestCodec()

	tokenString, err := codec.IssueRefresh()
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := codec.Verify(tokenString)
	require.NoError(t, err)

	// Claim "data" - nonce из 10 символов
	nonce, ok := claims["data"].(string)
	require.True(t, ok)
	assert.Len(t, nonce, 10)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), exp.Time, time.Minute)
}

func TestCodec_IssueRefresh_NeverEqual(t *testing.T) {
	codec := newTestCodec()

	// Два выпуска в пределах одного тика часов различаются за счет nonce
	first, err := codec.IssueRefresh()
	require.NoError(t, err)
	second, err := codec.IssueRefresh()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCodec_Verify_Errors(t *testing.T) {
	codec := newTestCodec()

	valid, err := codec.IssueAccess(map[string]any{"user_id": "user-1"})
	require.NoError(t, err)

	expiredCodec := NewCodec(testSecret, -time.Minute, 365*24*time.Hour)
	expired, err := expiredCodec.IssueAccess(map[string]any{"user_id": "user-1"})
	require.NoError(t, err)

	otherCodec := NewCodec("another-secret", 5*time.Minute, 365*24*time.Hour)
	foreign, err := otherCodec.IssueAccess(map[string]any{"user_id": "user-1"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage string", token: "not-a-token"},
		{name: "tampered payload", token: tamper(valid)},
		{name: "expired token", token: expired},
		{name: "wrong secret", token: foreign},
		{name: "empty string", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Verify(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTokenInvalid)
			assert.Nil(t, claims)
		})
	}
}

// tamper подменяет payload токена, сохраняя подпись
func tamper(tokenString string) string {
	parts := strings.Split(tokenString, ".")
	parts[1] = "eyJ1c2VyX2lkIjoiZXZpbCJ9"
	return strings.Join(parts, ".")
}
