package user

import (
	"context"
	"errors"
	"strings"

	"github.com/wichananm65/cooknest/internal/form"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the form, rejects a taken email and stores the user with
// a bcrypt hash of the password. Validation failures come back as form.Errors.
func (s *Service) Register(ctx context.Context, reg form.Registration) (User, error) {
	if errs := form.ValidateRegistration(reg); errs != nil {
		return User{}, errs
	}

	email := strings.TrimSpace(reg.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(ctx, User{
		Name:     strings.TrimSpace(reg.Name),
		Email:    email,
		Password: string(hashed),
	})
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
