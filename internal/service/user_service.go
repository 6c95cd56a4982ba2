package service

import (
	"fmt"
	"time"

	"github.com/tripline/vehicle-location-go/internal/auth"
	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/repository"
)

// UserService handles registration and login for web clients
type UserService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{userRepo: userRepo, jwtSecret: jwtSecret}
}

// Register creates a new user account with a bcrypt password hash
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		CreatedAt:    time.Now().UTC(),
	}
	user.ID, err = s.userRepo.Create(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed session token
func (s *UserService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
