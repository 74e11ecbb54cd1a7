package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"nimbushost/internal/models"
)

// MemoryStore is an in-memory UserStore with the same consumption
// guarantees as the MySQL adapter. Used when no DB_DSN is configured
// and throughout the test suites.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*models.User)}
}

func (s *MemoryStore) Create(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, ErrDuplicateEmail
		}
	}

	now := time.Now()
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.users[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *MemoryStore) ByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ByEmailOrName(_ context.Context, email, name string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if (email != "" && u.Email == email) || (name != "" && u.Name == name) {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ConsumeVerifyToken(_ context.Context, code string, now time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.VerifyToken != nil && *u.VerifyToken == code && u.VerifyTokenExpiry != nil && u.VerifyTokenExpiry.After(now) {
			u.IsVerified = true
			u.VerifyToken = nil
			u.VerifyTokenExpiry = nil
			u.UpdatedAt = now
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNoActiveToken
}

func (s *MemoryStore) SetResetToken(_ context.Context, id, token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ResetPasswordToken = &token
	u.ResetPasswordTokenExpiry = &expiry
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) ConsumeResetToken(_ context.Context, token, newHash string, now time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token && u.ResetPasswordTokenExpiry != nil && u.ResetPasswordTokenExpiry.After(now) {
			u.PasswordHash = newHash
			u.ResetPasswordToken = nil
			u.ResetPasswordTokenExpiry = nil
			u.UpdatedAt = now
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNoActiveToken
}

func (s *MemoryStore) RecordLogin(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	u.UpdatedAt = at
	return nil
}
