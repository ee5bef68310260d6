package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"alfatrade/internal/user"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("email already registered")
)

// MemoryUserRepository хранит пользователей, пока жив процесс.
// Email сравнивается без учёта регистра.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*user.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byEmail: make(map[string]*user.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := emailKey(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[key]; ok {
		return ErrDuplicate
	}
	stored := *u
	r.byEmail[key] = &stored
	return nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
