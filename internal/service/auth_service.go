package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"crmhub/internal/auth"
	apperrors "crmhub/internal/errors"
	"crmhub/internal/mailer"
	"crmhub/internal/model"
	"crmhub/internal/repository"
)

// AuthService handles registration and credential verification.
type AuthService interface {
	// Register creates a user and returns it with a fresh session token.
	Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error)
	// Login verifies credentials and returns the user with a session token.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// GetUser resolves a user by the id carried in token claims.
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	mail       mailer.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, mail mailer.Mailer) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		mail:       mail,
	}
}

// Register creates a new user with a hashed password. Email uniqueness is
// case-insensitive: a second registration with the same address in any casing
// is rejected, backed by the unique index on the lowercased column.
func (s *authService) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         model.RoleStaff,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Generate(user.ID.String(), user.Email, user.Role, user.FirstName, user.LastName)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	// Welcome mail is best effort and must never fail registration.
	go func(to, name string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mail.SendWelcome(ctx, to, name); err != nil {
			log.Printf("welcome mail to %s: %v", to, err)
		}
	}(user.Email, user.FirstName)

	return user, token, nil
}

// Login authenticates a user and issues a session token. Inactive accounts
// and unknown emails both answer with the same credentials error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if !auth.ComparePassword(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Generate(user.ID.String(), user.Email, user.Role, user.FirstName, user.LastName)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// GetUser resolves the principal behind a verified token.
func (s *authService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
