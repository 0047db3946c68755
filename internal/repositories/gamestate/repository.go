// Package gamestate provides the repository interface and types for
// persisted game sessions.
package gamestate

import (
	"context"

	"github.com/tavernkeep/gm-engine/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/tavernkeep/gm-engine/internal/repositories/gamestate Repository

// CreateInput contains parameters for persisting a new session.
type CreateInput struct {
	State *entities.GameState
}

// CreateOutput contains the result of persisting a new session.
type CreateOutput struct {
	State *entities.GameState
}

// GetInput contains parameters for retrieving a session.
type GetInput struct {
	SessionID string
}

// GetOutput contains the result of retrieving a session.
type GetOutput struct {
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

// ListInput contains parameters for listing stored session IDs.
type ListInput struct{}

// ListOutput contains the stored session IDs.
type ListOutput struct {
	SessionIDs []string
}

// Repository defines the storage operations for game sessions. The stored
// aggregate is the whole GameState; there are no partial writes.
type Repository interface {
	// Create stores a new session, failing when the ID is already taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing session wholesale
	Update(ctx context.Context, state *entities.GameState) error

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns all stored session IDs
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}
