package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/sablegrove/sitterly/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingDisplayName = errors.New("display name is required")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	Create(user *models.User) error
	UpdateProfile(userID uint, updates map[string]any) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (service *AuthService) Register(email string, password string, displayName string) (models.User, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return models.User{}, ErrInvalidEmail
	}
	if len(password) < 8 {
		return models.User{}, ErrWeakPassword
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return models.User{}, ErrMissingDisplayName
	}

	taken, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		DisplayName:  displayName,
		Plan:         models.PlanFree,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) Login(email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// UpdateProfile edits display name and avatar; email and plan stay fixed.
func (service *AuthService) UpdateProfile(userID uint, displayName string, avatarURL string) (models.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return models.User{}, ErrMissingDisplayName
	}
	updates := map[string]any{
		"display_name": displayName,
		"avatar_url":   strings.TrimSpace(avatarURL),
	}
	if err := service.users.UpdateProfile(userID, updates); err != nil {
		return models.User{}, err
	}
	return service.users.FindByID(userID)
}
