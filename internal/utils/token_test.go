package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test_secret", time.Hour)

	token, err := m.GenerateToken("user-1", "0xabcdef0123456789abcdef0123456789abcdef01", "ADMIN")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateTokenRejects(t *testing.T) {
	m := NewTokenManager("test_secret", time.Hour)

	other, err := NewTokenManager("other_secret", time.Hour).GenerateToken("u", "0x", "USER")
	require.NoError(t, err)
	_, err = m.ValidateToken(other)
	assert.Error(t, err)

	expired, err := NewTokenManager("test_secret", -time.Minute).GenerateToken("u", "0x", "USER")
	require.NoError(t, err)
	_, err = m.ValidateToken(expired)
	assert.Error(t, err)

	_, err = m.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	_, err := ExtractToken(c)
	assert.Error(t, err)

	c.Request.Header.Set("Authorization", "Token abc")
	_, err = ExtractToken(c)
	assert.Error(t, err)

	c.Request.Header.Set("Authorization", "Bearer abc")
	token, err := ExtractToken(c)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
