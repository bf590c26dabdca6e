package service

import (
	"context"
	"fmt"
	"time"

	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceImpl implements ports.AuthService using bcrypt credentials
// and HS256 JWTs keyed by the user's email.
type AuthServiceImpl struct {
	userRepo ports.UserRepository
	secret   []byte
	expiry   time.Duration
	issuer   string
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(userRepo ports.UserRepository, secret string, expiry time.Duration, issuer string) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		secret:   []byte(secret),
		expiry:   expiry,
		issuer:   issuer,
	}
}

// Login verifies the credentials and issues a signed token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not leak whether the email exists.
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub": user.Email,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("signing token: %w", err))
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a token, returning the claims.
func (s *AuthServiceImpl) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperror.ErrInvalidToken()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperror.ErrInvalidToken()
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, apperror.ErrInvalidToken()
	}

	return &ports.TokenClaims{Email: sub}, nil
}
