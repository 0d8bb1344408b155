package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.TokenStore = (*TokenStore)(nil)
)

// Repository is the in-memory account persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
}

func NewRepository() *Repository {
	return &Repository{byID: map[uuid.UUID]*domain.User{}, byEmail: map[string]uuid.UUID{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return ports.ErrDuplicateEmail
	}
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[email] = user.ID
	return nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok || user.DeletedAt != nil {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	user := r.byID[id]
	if user == nil || user.DeletedAt != nil {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

// TokenStore is the in-memory refresh-token store.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: map[string]*domain.RefreshToken{}}
}

func (s *TokenStore) Save(_ context.Context, token *domain.RefreshToken) error {
	if token == nil {
		return errors.New("token is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *token
	s.tokens[token.Token] = &clone
	return nil
}

func (s *TokenStore) Get(_ context.Context, token string) (*domain.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tokens[token]
	if !ok {
		return nil, ports.ErrTokenNotFound
	}
	clone := *stored
	if stored.RevokedAt != nil {
		revoked := *stored.RevokedAt
		clone.RevokedAt = &revoked
	}
	return &clone, nil
}

func (s *TokenStore) Update(_ context.Context, token *domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token.Token]; !ok {
		return ports.ErrTokenNotFound
	}
	clone := *token
	s.tokens[token.Token] = &clone
	return nil
}

func (s *TokenStore) RevokeAllForUser(_ context.Context, userID uuid.UUID, now time.Time, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, token := range s.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.Revoke(now, reason, "")
		}
	}
	return nil
}

func (s *TokenStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for key, token := range s.tokens {
		if now.After(token.ExpiresAt) {
			delete(s.tokens, key)
			purged++
		}
	}
	return purged, nil
}
