package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jaakkopy/todo-backend/internal/shared"
)

// Claims is the identity assertion carried inside issued tokens.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies signed, time-limited identity assertions.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer signing with the given secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithNow overrides the issuer clock for testing.
func (t *TokenIssuer) WithNow(fn func() time.Time) {
	if fn != nil {
		t.now = fn
	}
}

// Issue signs a new token asserting the user's identity, valid for the
// configured lifetime from issuance.
func (t *TokenIssuer) Issue(user *User) (string, error) {
	issuedAt := t.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Verify decodes and validates a raw token string. Any failure, including
// expiry, yields a Forbidden error: the credential was presented but could
// not be verified.
func (t *TokenIssuer) Verify(raw string) (shared.Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return shared.Identity{}, shared.Forbidden("invalid or expired token")
	}
	return shared.Identity{ID: claims.UserID, Email: claims.Email, Token: raw}, nil
}
