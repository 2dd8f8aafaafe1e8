package usecases

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// AdminRole is the role claim carried by admin session tokens.
const AdminRole = "admin"

// DefaultSessionTTL is how long an admin session token stays valid.
const DefaultSessionTTL = 72 * time.Hour

// Session is an issued admin session.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

// AuthService gates the admin surface behind a shared password. It is a
// convenience gate, not a security boundary.
type AuthService struct {
	password []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(password string, secret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		password: []byte(password),
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login compares password with the shared admin password and issues a signed
// session token on success.
func (a *AuthService) Login(password string) (Session, error) {
	if len(a.password) == 0 || subtle.ConstantTimeCompare([]byte(password), a.password) != 1 {
		return Session{}, ErrInvalidPassword
	}

	id := uuid.New().String()
	expiresAt := a.now().Add(a.ttl)

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["jti"] = id
	claims["role"] = AdminRole
	claims["exp"] = expiresAt.Unix()

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return Session{
		ID:        id,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify parses a session token and checks its signature, expiry and role.
func (a *AuthService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid || claims["role"] != AdminRole {
		return "", errors.New("not an admin session")
	}

	id, _ := claims["jti"].(string)
	return id, nil
}

// Secret returns the signing key, for the transport layer's token middleware.
func (a *AuthService) Secret() []byte {
	return a.secret
}
