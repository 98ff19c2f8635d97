package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bazzangee/internal/microservices/http-api/models"
	"bazzangee/internal/microservices/http-api/repository"
	"bazzangee/internal/middleware/auth"

	"gorm.io/gorm"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserError(ctx, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user_registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks the credentials and records the login time.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		// unknown user still pays for one bcrypt compare
		auth.BurnCompare(password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		// not fatal, the session is still valid
		s.logger.Warn("last_login_update_failed", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// duplicateUserError names the unique column a concurrent registration took.
// The translated driver error no longer carries the constraint name.
func (s *authService) duplicateUserError(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return ErrEmailInUse
	}
	return ErrNameInUse
}
