package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mindsync/wellness/internal/model"
	"github.com/mindsync/wellness/internal/repository"
	"github.com/mindsync/wellness/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost = 10
	TokenTTL   = 30 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("user already exists")
	ErrExpiredToken       = errors.New("token expired")
	ErrMalformedToken     = errors.New("malformed token")
	// ErrConfig marks server misconfiguration, never a client mistake.
	ErrConfig = errors.New("auth is misconfigured")
)

// Claims carries the user id and nothing else from the profile, so profile
// edits show up on the next request without reissuing tokens.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepository repository.UserRepository
	emailService   *EmailService
	jwtSecret      []byte
	now            func() time.Time
}

func NewAuthService(userRepository repository.UserRepository, emailService *EmailService, jwtSecret string) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		emailService:   emailService,
		jwtSecret:      []byte(jwtSecret),
		now:            time.Now,
	}
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and returns it with a fresh token.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if name == "" || email == "" || in.Password == "" {
		return nil, "", &validation.Error{Message: "Please fill all fields"}
	}

	err := validation.ValidateName(name)
	if err != nil {
		return nil, "", err
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, "", err
	}
	err = validation.ValidatePassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	existing, err := s.userRepository.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	err = s.userRepository.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	err = s.emailService.SendWelcomeEmail(ctx, user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
	}

	slog.Info("new user created", "user_id", user.ID, "email", user.Email)
	return user.Public(), token, nil
}

// Login checks credentials. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || password == "" {
		return nil, "", &validation.Error{Message: "Email and password are required"}
	}

	user, err := s.userRepository.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() || !s.ComparePassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user.Public(), token, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &validation.Error{Field: "password", Message: "password must not exceed 72 characters"}
	}
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", ErrConfig, err)
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) IssueToken(userID string) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", fmt.Errorf("%w: JWT_SECRET is not set", ErrConfig)
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken returns the user id a token was issued for.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", fmt.Errorf("%w: JWT_SECRET is not set", ErrConfig)
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing id claim", ErrMalformedToken)
	}

	return claims.UserID, nil
}
