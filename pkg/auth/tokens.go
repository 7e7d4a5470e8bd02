package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TokenType distinguishes the two token classes. A refresh token must never
// be accepted where an access token is required, and vice versa.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Verification failures are reported as typed errors so callers can map them
// to precise HTTP responses.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrBadSignature   = errors.New("token signature is invalid")
	ErrWrongTokenType = errors.New("token is of the wrong type")
)

// TokenClaims represents the claims carried by both token classes.
type TokenClaims struct {
	Email     string `json:"email"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256-signed tokens. There is no
// server-side revocation store; a token is valid until it expires.
type TokenService struct {
	secret          []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	timeFunc        func() time.Time // injectable for expiry tests
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret string, accessLifetime, refreshLifetime time.Duration) *TokenService {
	return &TokenService{
		secret:          []byte(secret),
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
		timeFunc:        time.Now,
	}
}

// IssueAccessToken creates a short-lived token authorizing entity operations.
func (s *TokenService) IssueAccessToken(email string) (string, error) {
	return s.issue(email, TokenTypeAccess, s.accessLifetime)
}

// IssueRefreshToken creates a longer-lived token used only to mint new access
// tokens.
func (s *TokenService) IssueRefreshToken(email string) (string, error) {
	return s.issue(email, TokenTypeRefresh, s.refreshLifetime)
}

func (s *TokenService) issue(email string, typ TokenType, lifetime time.Duration) (string, error) {
	now := s.timeFunc()
	claims := TokenClaims{
		Email:     email,
		TokenType: string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signedToken, nil
}

// Verify checks structure, signature, expiry, and token type, and returns the
// identity the token was issued for.
func (s *TokenService) Verify(tokenString string, expected TokenType) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadSignature
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.timeFunc() }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		default:
			return "", ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return "", ErrTokenMalformed
	}

	if claims.TokenType != string(expected) {
		return "", ErrWrongTokenType
	}

	return claims.Email, nil
}
