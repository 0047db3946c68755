// Package narrative defines the client interface for the AI narrator and
// its Gemini-backed implementation. The narrator only describes outcomes the
// engine has already resolved; it never decides mechanics.
package narrative

//go:generate mockgen -destination=mock/mock_client.go -package=narrativemock github.com/tavernkeep/gm-engine/internal/clients/narrative Client

import (
	"context"

	"github.com/tavernkeep/gm-engine/internal/entities"
)

// PromptKind selects which narrator persona handles the request.
type PromptKind string

// Prompt kinds.
const (
	PromptOpeningScene PromptKind = "opening_scene"
	PromptAction       PromptKind = "action"
	PromptCombat       PromptKind = "combat"
	PromptDialogue     PromptKind = "dialogue"
	PromptBackstory    PromptKind = "backstory"
)

// GenerateInput carries everything the narrator needs for one response.
type GenerateInput struct {
	Kind PromptKind

	// State provides world, party, and recent-history context
	State *entities.GameState

	// PlayerAction is the raw player input being narrated
	PlayerAction string

	// Outcome is the engine's already-resolved mechanical result, rendered
	// as plain text. The narrator must describe it, not re-decide it.
	Outcome string
}

// GenerateOutput carries the narrator's prose.
type GenerateOutput struct {
	Text string
}

// Client generates narration. Implementations must return Unavailable-coded
// errors on collaborator failure so callers can fall back to templated text.
type Client interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}
