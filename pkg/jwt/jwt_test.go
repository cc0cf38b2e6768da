package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

const testSecret = "test-secret"

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager(testSecret, time.Hour)

	token, err := m.GenerateToken("user-1", RoleAdmin)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	again, err := m.GenerateToken("user-1", RoleAdmin)
	require.NoError(t, err)
	assert.NotEqual(t, token, again)
}

func TestManager_ParseToken(t *testing.T) {
	m := NewManager(testSecret, time.Hour)

	t.Run("rol声明名称", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "external",
			"rol": RoleUser,
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		signed, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		claims, err := m.ParseToken(signed)
		require.NoError(t, err)
		assert.Equal(t, RoleUser, claims.Role)
	})

	t.Run("缺少角色", func(t *testing.T) {
		token, err := m.GenerateToken("user-1", "")
		require.NoError(t, err)

		claims, err := m.ParseToken(token)
		require.NoError(t, err)
		assert.Empty(t, claims.Role)
	})

	t.Run("过期Token", func(t *testing.T) {
		expired := NewManager(testSecret, -time.Minute)
		token, err := expired.GenerateToken("user-1", RoleUser)
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("签名密钥不匹配", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour)
		token, err := other.GenerateToken("user-1", RoleUser)
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("非HMAC算法", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"rol": RoleAdmin})
		signed, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.ParseToken(signed)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
