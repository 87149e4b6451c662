package auth

import (
	"errors"
	"time"

	autherrors "github.com/prasadp25/protecther-hrms-sub001/internal/auth/errors"
	"github.com/prasadp25/protecther-hrms-sub001/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Claims struct {
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access and refresh tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (t *TokenIssuer) AccessTTL() time.Duration {
	return t.accessTTL
}

func (t *TokenIssuer) Issue(userID, role string) (access, refresh string, err error) {
	access, err = t.sign(userID, role, tokenTypeAccess, t.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.sign(userID, role, tokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *TokenIssuer) sign(userID, role, tokenType string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenIssuer) parse(token, tokenType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, autherrors.ErrTokenExpired
	}
	if err != nil || claims.TokenType != tokenType || claims.Subject == "" {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccessToken rejects refresh tokens so they cannot be replayed as
// bearer credentials.
func (t *TokenIssuer) VerifyAccessToken(token string) (middleware.Principal, error) {
	claims, err := t.parse(token, tokenTypeAccess)
	if err != nil {
		return middleware.Principal{}, err
	}
	return middleware.Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

func (t *TokenIssuer) VerifyRefreshToken(token string) (string, error) {
	claims, err := t.parse(token, tokenTypeRefresh)
	if err != nil {
		return "", autherrors.ErrInvalidRefreshToken
	}
	return claims.Subject, nil
}
