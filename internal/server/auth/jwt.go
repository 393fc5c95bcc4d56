package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the lifetime of an issued token unless configured otherwise.
const DefaultTokenValidity = 2 * time.Hour

// TokenService issues and validates signed, time-limited identity tokens.
type TokenService interface {
	Issue(userID int64) (string, error)
	Validate(token string) (int64, error)
}

// TokenConfig carries the signing key and token lifetime.
type TokenConfig struct {
	Secret   []byte
	Validity time.Duration
}

// Claims is the token payload: the standard iat/exp pair plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// JWTService is a TokenService backed by HS256 JWTs.
type JWTService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(cfg TokenConfig) (*JWTService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	validity := cfg.Validity
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &JWTService{secret: secret, validity: validity, now: time.Now}, nil
}

// Issue signs a token for userID with iat = now and exp = now + validity.
func (s *JWTService) Issue(userID int64) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Validate checks signature and expiry and returns the embedded user id.
// Every failure wraps common.ErrInvalidToken; expiry additionally wraps
// common.ErrTokenExpired.
func (s *JWTService) Validate(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return 0, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID <= 0 {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
