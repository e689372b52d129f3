package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Generate("user-123", "jane@example.com", "manager", "Jane", "Doe")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "Jane", claims.FirstName)
	assert.Equal(t, "Doe", claims.LastName)
}

func TestJWTService_Generate_NoSecret(t *testing.T) {
	svc := NewJWTService("")

	_, err := svc.Generate("user-123", "jane@example.com", "staff", "", "")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestJWTService_Verify_Invalid(t *testing.T) {
	svc := NewJWTService("test-secret")

	expired := func() string {
		claims := &Claims{
			UserID: "user-123",
			Email:  "jane@example.com",
			Role:   "staff",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		assert.NoError(t, err)
		return token
	}()

	otherSecret, err := NewJWTService("other-secret").Generate("user-123", "jane@example.com", "staff", "", "")
	assert.NoError(t, err)

	wrongAlg := func() string {
		claims := jwt.MapClaims{"userId": "user-123"}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.NoError(t, err)
		return token
	}()

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"garbage", "not.a.token"},
		{"expired token", expired},
		{"wrong secret", otherSecret},
		{"none algorithm", wrongAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
