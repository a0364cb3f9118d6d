package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no token provided")
	ErrTokenExpired = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// UserClaim is the `user` object embedded in every session token.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the token payload: {"user":{"id":...},"sub":...,"iat":...,"exp":...}.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Verification is the outcome of a successful Verify. ExpiresIn is only set when
// ExpiringSoon is true.
type Verification struct {
	UserID       string
	ExpiresAt    time.Time
	ExpiringSoon bool
	ExpiresIn    int64
}

// TokenService signs and verifies HS256 session tokens.
type TokenService struct {
	secret  []byte
	warning time.Duration

	// Now is the clock used for issuing and validating; defaults to time.Now.
	Now func() time.Time
}

func NewTokenService(secret string, expiryWarning time.Duration) *TokenService {
	return &TokenService{
		secret:  []byte(secret),
		warning: expiryWarning,
		Now:     time.Now,
	}
}

func (s *TokenService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Issue returns a signed token for userID valid for ttl.
func (s *TokenService) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user ID is required")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	now := s.now()
	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString. The returned error is one of
// ErrNoToken, ErrTokenExpired or ErrInvalidToken (possibly wrapped).
func (s *TokenService) Verify(tokenString string) (*Verification, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID := claims.User.ID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	v := &Verification{
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	remaining := v.ExpiresAt.Sub(s.now())
	if remaining < s.warning {
		v.ExpiringSoon = true
		v.ExpiresIn = int64(math.Round(remaining.Seconds()))
	}
	return v, nil
}
