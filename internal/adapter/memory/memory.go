// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"dietcoach/internal/domain"
)

// DB implements every repository port in memory.
type DB struct {
	mu        sync.Mutex
	profiles  map[string]domain.Profile
	sessions  map[string]domain.ChatSession
	weights   []domain.WeightLog
	operators []*domain.Operator
	console   map[string]*domain.ConsoleSession

	weightIDCounter   int64
	operatorIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		profiles: make(map[string]domain.Profile),
		sessions: make(map[string]domain.ChatSession),
		console:  make(map[string]*domain.ConsoleSession),
	}
}

// Ensure interfaces are met.
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.ChatSessionRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.OperatorRepository = (*DB)(nil)
var _ domain.ConsoleSessionRepository = (*ConsoleSessionRepo)(nil)

// --- ProfileRepository ---

// GetProfile returns the stored profile or nil when unknown.
func (db *DB) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p, ok := db.profiles[userID]; ok {
		ret := p
		return &ret, nil
	}
	return nil, nil
}

// PutProfile stores a copy of the profile.
func (db *DB) PutProfile(ctx context.Context, p *domain.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p.UserID == "" {
		return errors.New("profile missing userID")
	}
	db.profiles[p.UserID] = *p
	return nil
}

// DeleteProfile removes the profile. Deleting an unknown user is a no-op.
func (db *DB) DeleteProfile(ctx context.Context, userID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.profiles, userID)
	return nil
}

// --- ChatSessionRepository ---

// GetSession returns the stored conversation state or nil when unknown.
func (db *DB) GetSession(ctx context.Context, userID string) (*domain.ChatSession, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.sessions[userID]; ok {
		ret := s
		return &ret, nil
	}
	return nil, nil
}

// PutSession stores a copy of the conversation state.
func (db *DB) PutSession(ctx context.Context, s *domain.ChatSession) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s.UserID == "" {
		return errors.New("session missing userID")
	}
	db.sessions[s.UserID] = *s
	return nil
}

// DeleteSession removes the conversation state.
func (db *DB) DeleteSession(ctx context.Context, userID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.sessions, userID)
	return nil
}

// --- WeightRepository ---

// AppendWeight appends an entry to the ledger.
func (db *DB) AppendWeight(ctx context.Context, log domain.WeightLog) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	log.ID = db.weightIDCounter
	log.CreatedAt = log.CreatedAt.UTC()
	db.weights = append(db.weights, log)
	return log.ID, nil
}

// ListWeightsSince returns the user's entries at or after since, ascending.
func (db *DB) ListWeightsSince(ctx context.Context, userID string, since time.Time) ([]domain.WeightLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WeightLog
	for _, w := range db.weights {
		if w.UserID == userID && !w.CreatedAt.Before(since.UTC()) {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// PurgeWeights deletes the user's entire ledger.
func (db *DB) PurgeWeights(ctx context.Context, userID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.weights[:0]
	for _, w := range db.weights {
		if w.UserID != userID {
			kept = append(kept, w)
		}
	}
	db.weights = kept
	return nil
}

// --- OperatorRepository ---

// GetByUsername retrieves an operator by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, op := range db.operators {
		if op.Username == username {
			return op, nil
		}
	}
	return nil, nil
}

// GetByID retrieves an operator by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.Operator, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, op := range db.operators {
		if op.ID == id {
			return op, nil
		}
	}
	return nil, nil
}

// Create creates a new operator.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Operator, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, op := range db.operators {
		if op.Username == username {
			return nil, errors.New("operator already exists")
		}
	}

	db.operatorIDCounter++
	op := &domain.Operator{
		ID:           db.operatorIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.operators = append(db.operators, op)
	return op, nil
}

// Count returns the total number of operators.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.operators), nil
}

// --- ConsoleSessionRepository ---

// ConsoleSessionRepo implements console session persistence.
type ConsoleSessionRepo struct {
	db *DB
}

// NewConsoleSessionRepo wraps the DB as a ConsoleSessionRepository.
func (db *DB) NewConsoleSessionRepo() *ConsoleSessionRepo {
	return &ConsoleSessionRepo{db: db}
}

// Create creates a new console session.
func (r *ConsoleSessionRepo) Create(ctx context.Context, operatorID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.console[token] = &domain.ConsoleSession{
		Token:      token,
		OperatorID: operatorID,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a console session by token.
func (r *ConsoleSessionRepo) GetByToken(ctx context.Context, token string) (*domain.ConsoleSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.console[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.console, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a console session.
func (r *ConsoleSessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.console, token)
	return nil
}

// DeleteExpired deletes all expired console sessions.
func (r *ConsoleSessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.console {
		if now.After(v.ExpiresAt) {
			delete(r.db.console, k)
		}
	}
	return nil
}
