package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SessionExpiry is the fixed validity window of a session token. Tokens are
// stateless: logout only removes the client cookie, so a token stays valid
// until this window closes.
const SessionExpiry = 7 * 24 * time.Hour

// ErrNoSecret is returned when token issuance is attempted without a signing secret.
var ErrNoSecret = errors.New("token signing secret is not configured")

// Claims carries the identity encoded into a session token.
type Claims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Generate signs a session token for the given identity with the fixed
// 7-day expiry. userID, email and role are mandatory claims.
func (s *JWTService) Generate(userID, email, role, firstName, lastName string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a session token. Any failure (malformed input,
// bad signature, wrong algorithm, expiry) yields an error; callers must treat
// every error uniformly as "unauthenticated" and never branch on the cause.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("missing subject claim")
	}

	return claims, nil
}
