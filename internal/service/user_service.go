package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

// UserService describes account registration and login.
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// UserOption customizes a UserService.
type UserOption func(*userService)

// WithHasher replaces the default bcrypt hasher.
func WithHasher(h PasswordHasher) UserOption {
	return func(s *userService) { s.hasher = h }
}

// WithValidators adds signup credential checks, run in order.
func WithValidators(v ...CredentialValidator) UserOption {
	return func(s *userService) { s.validators = append(s.validators, v...) }
}

type userService struct {
	users      repository.UserRepository
	hasher     PasswordHasher
	validators []CredentialValidator
	// compared against when the email is unknown so both login failures cost
	// one hash comparison
	dummyHash string
}

func NewUserService(users repository.UserRepository, opts ...UserOption) (UserService, error) {
	s := &userService{
		users:  users,
		hasher: NewBcryptHasher(DefaultBcryptCost),
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := s.hasher.Hash("recipebox-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

func (s *userService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	for _, check := range s.validators {
		if err := check(email, password); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
