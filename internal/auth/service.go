package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/bakery-hub/internal"
)

// UserRepository resolves the identity behind a token subject.
type UserRepository interface {
	GetActiveUserByID(ctx context.Context, userID string) (*internal.User, error)
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, tokenString string) (*internal.User, error)
}

type Service struct {
	userRepo  UserRepository
	validator TokenValidator
}

func NewService(userRepo UserRepository, validator TokenValidator) *Service {
	return &Service{
		userRepo:  userRepo,
		validator: validator,
	}
}

// Authenticate turns a bearer token into the current user. Any failure is a 401.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*internal.User, error) {
	if tokenString == "" {
		return nil, internal.ErrUnauthenticated
	}

	claims, err := s.validator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetActiveUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, internal.ErrUnauthenticated
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}

	return user, nil
}

func NewJWTTokenGenerator(secret string, accessTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:    []byte(secret),
		AccessTTL: accessTTL,
		Issuer:    "bakery-hub",
	}
}

// GenerateAccessToken signs a token for an existing user. Used by the token command for local development.
func (j *JWTTokenGenerator) GenerateAccessToken(userID, email string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
			Issuer:    j.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}
