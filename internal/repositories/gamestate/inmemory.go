package gamestate

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/pkg/clock"
)

// InMemoryConfig holds the configuration for the in-memory repository.
type InMemoryConfig struct {
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided.
func (c *InMemoryConfig) Validate() error {
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

// inMemoryRepository keeps sessions in a map, storing JSON copies so callers
// can never mutate stored state behind the repository's back.
type inMemoryRepository struct {
	mu     sync.RWMutex
	states map[string][]byte
	clock  clock.Clock
}

// NewInMemoryRepository creates a map-backed repository for tests and local
// development without Redis.
func NewInMemoryRepository(cfg *InMemoryConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &inMemoryRepository{
		states: make(map[string][]byte),
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*inMemoryRepository)(nil)

// Create stores a new session.
func (r *inMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[input.State.SessionID]; ok {
		return nil, errors.AlreadyExistsf("session %s already exists", input.State.SessionID)
	}

	now := r.clock.Now()
	input.State.CreatedAt = now
	input.State.UpdatedAt = now

	stateJSON, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game state")
	}
	r.states[input.State.SessionID] = stateJSON

	return &CreateOutput{State: input.State}, nil
}

// Get retrieves a session by ID.
func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.RLock()
	stateJSON, ok := r.states[input.SessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	var state entities.GameState
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal game state")
	}

	return &GetOutput{State: &state}, nil
}

// Update replaces an existing session wholesale.
func (r *inMemoryRepository) Update(_ context.Context, state *entities.GameState) error {
	if state == nil {
		return errors.InvalidArgument(errStateNil)
	}
	if state.SessionID == "" {
		return errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[state.SessionID]; !ok {
		return errors.NotFoundf("session %s not found", state.SessionID)
	}

	state.UpdatedAt = r.clock.Now()

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal game state")
	}
	r.states[state.SessionID] = stateJSON

	return nil
}

// Delete removes a session.
func (r *inMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.states[input.SessionID]
	delete(r.states, input.SessionID)

	return &DeleteOutput{Deleted: ok}, nil
}

// List returns all stored session IDs in sorted order.
func (r *inMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.states))
	for id := range r.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &ListOutput{SessionIDs: ids}, nil
}
