// Package session implements the session orchestrator: creation, lookup,
// and serialized mutation of persisted game sessions.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/tavernkeep/gm-engine/internal/orchestrators/session Service

import (
	"context"
	"sync"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/pkg/idgen"
	"github.com/tavernkeep/gm-engine/internal/repositories/gamestate"
)

// Mutator applies one atomic change to a session's state. Returning an error
// aborts the update; nothing is persisted.
type Mutator func(state *entities.GameState) error

// CreateInput contains parameters for creating a session.
type CreateInput struct {
	Player *entities.CharacterSheet
	World  entities.WorldContext
}

// CreateOutput contains the newly created session.
type CreateOutput struct {
	State *entities.GameState
}

// GetInput contains parameters for retrieving a session.
type GetInput struct {
	SessionID string
}

// GetOutput contains the retrieved session.
type GetOutput struct {
	State *entities.GameState
}

// UpdateInput contains parameters for mutating a session.
type UpdateInput struct {
	SessionID string
	Mutate    Mutator
}

// UpdateOutput contains the session state after the mutation was persisted.
type UpdateOutput struct {
	State *entities.GameState
}

// DeleteInput contains parameters for deleting a session.
type DeleteInput struct {
	SessionID string
}

// DeleteOutput contains the result of deleting a session.
type DeleteOutput struct {
	Deleted bool
}

// ListInput contains parameters for listing sessions.
type ListInput struct{}

// ListOutput contains the stored session IDs.
type ListOutput struct {
	SessionIDs []string
}

// Service defines the interface for session operations. Update serializes
// concurrent mutations per session; readers are never blocked.
type Service interface {
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// Config holds the dependencies for the session orchestrator.
type Config struct {
	Repo        gamestate.Repository
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	repo  gamestate.Repository
	idGen idgen.Generator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewOrchestrator creates a new session orchestrator with the provided
// dependencies.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:  cfg.Repo,
		idGen: cfg.IDGenerator,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Create persists a fresh session for the given player.
func (o *orchestrator) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Player == nil {
		return nil, errors.InvalidArgument("player character is required")
	}

	state := &entities.GameState{
		SessionID: o.idGen.Generate(),
		Player:    input.Player,
		World:     input.World,
	}

	created, err := o.repo.Create(ctx, gamestate.CreateInput{State: state})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create session")
	}

	return &CreateOutput{State: created.State}, nil
}

// Get retrieves a session by ID.
func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	got, err := o.repo.Get(ctx, gamestate.GetInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	return &GetOutput{State: got.State}, nil
}

// Update loads a session, applies the mutator, and persists the result. The
// read-modify-write cycle holds the session's lock for its whole duration so
// concurrent updates to the same session serialize instead of clobbering
// each other. A mutator error aborts the update without persisting.
func (o *orchestrator) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.Mutate == nil {
		return nil, errors.InvalidArgument("mutator is required")
	}

	lock := o.sessionLock(input.SessionID)
	lock.Lock()
	defer lock.Unlock()

	got, err := o.repo.Get(ctx, gamestate.GetInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	state := got.State
	if err := input.Mutate(state); err != nil {
		return nil, err
	}

	if err := o.repo.Update(ctx, state); err != nil {
		return nil, errors.Wrapf(err, "failed to persist session %s", input.SessionID)
	}

	return &UpdateOutput{State: state}, nil
}

// Delete removes a session.
func (o *orchestrator) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.repo.Delete(ctx, gamestate.DeleteInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	delete(o.locks, input.SessionID)
	o.mu.Unlock()

	return &DeleteOutput{Deleted: out.Deleted}, nil
}

// List returns all stored session IDs.
func (o *orchestrator) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	out, err := o.repo.List(ctx, gamestate.ListInput{})
	if err != nil {
		return nil, err
	}

	return &ListOutput{SessionIDs: out.SessionIDs}, nil
}

// sessionLock returns the mutex guarding one session, creating it lazily.
func (o *orchestrator) sessionLock(sessionID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()

	lock, ok := o.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[sessionID] = lock
	}
	return lock
}
