package auth

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/skillexchange/internal/config"
	"github.com/mrlokans/skillexchange/internal/database/users"
	"github.com/mrlokans/skillexchange/internal/entities"
)

var (
	ErrMissingFields      = errors.New("required fields missing")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = users.ErrEmailTaken
)

// UserStore defines the user data access the service needs.
type UserStore interface {
	CreateWithSkills(user *entities.User, teach, learn []uint, availableTime string) error
	GetByEmail(email string) (*entities.User, error)
}

// RegistrationInput carries a submitted registration form.
type RegistrationInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Division        string
	TeachSkills     []uint
	LearnSkills     []uint
	AvailableTime   string
}

// Normalize trims the free-text fields. Passwords are kept as typed.
func (in RegistrationInput) Normalize() RegistrationInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Division = strings.TrimSpace(in.Division)
	in.AvailableTime = strings.TrimSpace(in.AvailableTime)
	return in
}

// Validate checks the input before anything is written.
func (in RegistrationInput) Validate() error {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Division == "" {
		return ErrMissingFields
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(in.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Service handles registration and credential checks.
type Service struct {
	users  UserStore
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(store UserStore, cfg config.Auth) *Service {
	return &Service{
		users:  store,
		config: cfg,
	}
}

// Register validates the input, then stores the user together with the
// selected skills.
func (s *Service) Register(input RegistrationInput) (*entities.User, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	digest, err := HashPassword(input.Password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:           input.Name,
		Email:          input.Email,
		PasswordDigest: digest,
		Division:       input.Division,
	}
	if err := s.users.CreateWithSkills(user, input.TeachSkills, input.LearnSkills, input.AvailableTime); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate validates credentials and returns the user. Unknown email
// and wrong password yield the same error.
func (s *Service) Authenticate(email, password string) (*entities.User, error) {
	user, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordDigest); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
