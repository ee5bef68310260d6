package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"alfatrade/internal/user"
	"alfatrade/internal/user/repository"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrInvalidCreds = errors.New("invalid credentials")
)

type UserRepository interface {
	Create(context.Context, *user.User) error
	GetByEmail(context.Context, string) (*user.User, error)
}

type PasswordHasher interface {
	HashPassword(string) (string, error)
	CheckPassword(hashed, plain string) bool
}

type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
	now    func() time.Time
}

func NewUserService(repo UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher, now: time.Now}
}

func (s *UserService) Register(ctx context.Context, email, password string) (*user.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hash,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// гонка двух регистраций с одним email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCreds
		}
		return nil, err
	}

	if !s.hasher.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCreds
	}

	return u, nil
}
