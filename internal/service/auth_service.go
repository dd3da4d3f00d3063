package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"binderbuilder/internal/config"
	"binderbuilder/internal/middleware/auth"
	"binderbuilder/internal/models"
	"binderbuilder/internal/repository"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// TokenType is the marker returned alongside issued tokens.
const TokenType = "bearer"

type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	Login(username, password string) (token string, expiresIn int64, user *models.User, err error)
	Authenticate(tokenString string) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.TokenTTL,
	}
}

// Register registers a new user with the given username, email, and password.
// The default collection for the new user is created in the same transaction
// as the user row. Email is optional; when given it must be unused.
func (s *authService) Register(username, email, password string) (*models.User, error) {
	// Check if user exists
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrNameInUse
	}

	// Check if email exists
	if email != "" {
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			return nil, ErrEmailInUse
		}
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hashedPassword,
	}
	if email != "" {
		user.Email = &email
	}

	collection := &models.Collection{
		Name:        fmt.Sprintf("%s's Collection", username),
		Description: "Default collection",
	}

	if err := s.userRepo.CreateWithCollection(user, collection); err != nil {
		// the unique indexes catch duplicates that race past the pre-checks
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameInUse
		}
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a signed bearer token on success,
// together with the token lifetime in seconds.
func (s *authService) Login(username, password string) (string, int64, *models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		// User not found: run a dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", 0, nil, ErrInvalidCredentials
	}

	// Verify password
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", 0, nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return "", 0, nil, err
	}
	user.LastLogin = &now

	token, err := s.generateToken(user)
	if err != nil {
		return "", 0, nil, err
	}

	return token, int64(s.tokenTTL.Seconds()), user, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Authenticate verifies the token's signature and expiry and resolves the
// subject username back to a user record. Every failure mode maps to an
// unauthorized response: a token for a since-deleted user is as invalid as
// a forged one.
func (s *authService) Authenticate(tokenString string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByUsername(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}
