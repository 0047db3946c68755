// Package game implements the turn orchestrator: it owns the
// submit-resolve-narrate loop that turns raw player input into committed
// mechanical state and narrated prose.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/tavernkeep/gm-engine/internal/orchestrators/game Service

import (
	"context"
	"log/slog"

	"github.com/tavernkeep/gm-engine/internal/clients/narrative"
	"github.com/tavernkeep/gm-engine/internal/dice"
	"github.com/tavernkeep/gm-engine/internal/engine"
	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/orchestrators/session"
	"github.com/tavernkeep/gm-engine/internal/pkg/clock"
	"github.com/tavernkeep/gm-engine/internal/pkg/idgen"
	"github.com/tavernkeep/gm-engine/internal/rulebook"
)

// NewGameInput contains parameters for starting a new game.
type NewGameInput struct {
	PlayerName      string
	Race            entities.Race
	Class           entities.Class
	HistoryChoice   int // optional 2d6 background pick, 0 rolls
	AdventureChoice int // optional 2d6 motivation pick, 0 rolls
}

// NewGameOutput contains the created session and its opening narration.
type NewGameOutput struct {
	State     *entities.GameState
	Narrative string
}

// GetStateInput contains parameters for reading a session.
type GetStateInput struct {
	SessionID string
}

// GetStateOutput contains the current session state.
type GetStateOutput struct {
	State *entities.GameState
}

// SubmitActionInput contains one turn of raw player input.
type SubmitActionInput struct {
	SessionID string
	Action    string
}

// SubmitActionOutput contains the committed state, the mechanical outcome
// log, and the narration for one turn.
type SubmitActionOutput struct {
	State     *entities.GameState
	Outcome   string // resolved mechanics, line per event
	Narrative string

	CombatStarted bool
	CombatEnded   bool
	Victory       string // outcome string when CombatEnded
}

// Service defines the interface for game operations.
type Service interface {
	NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error)
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)
}

// Config holds the dependencies for the game orchestrator.
type Config struct {
	Sessions    session.Service
	Engine      *engine.Engine
	Narrator    narrative.Client
	Roller      *dice.Roller // encounter seeding and generation rolls
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Narrator == nil {
		vb.RequiredField("Narrator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	sessions session.Service
	engine   *engine.Engine
	narrator narrative.Client
	roller   *dice.Roller
	idGen    idgen.Generator
	clock    clock.Clock
}

// NewOrchestrator creates a new game orchestrator with the provided
// dependencies.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		sessions: cfg.Sessions,
		engine:   cfg.Engine,
		narrator: cfg.Narrator,
		roller:   cfg.Roller,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
	}, nil
}

// NewGame creates a character, persists a fresh session for it, and narrates
// the opening scene.
func (o *orchestrator) NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	player, err := rulebook.NewCharacter(o.roller, &rulebook.GenerateInput{
		ID:              o.idGen.Generate(),
		Name:            input.PlayerName,
		Race:            input.Race,
		Class:           input.Class,
		HistoryChoice:   input.HistoryChoice,
		AdventureChoice: input.AdventureChoice,
	})
	if err != nil {
		return nil, err
	}

	created, err := o.sessions.Create(ctx, &session.CreateInput{
		Player: player,
		World: entities.WorldContext{
			Location:  startingLocation,
			TimeOfDay: "evening",
			Weather:   "clear",
		},
	})
	if err != nil {
		return nil, err
	}
	state := created.State

	// Narration happens after the session is committed. A narrator outage
	// degrades the opening to a template, never the session itself.
	opening := o.narrate(ctx, &narrative.GenerateInput{
		Kind:  narrative.PromptOpeningScene,
		State: state,
	}, fallbackOpening(player))

	updated, err := o.sessions.Update(ctx, &session.UpdateInput{
		SessionID: state.SessionID,
		Mutate: func(s *entities.GameState) error {
			s.AppendHistory(entities.RoleGM, opening, o.clock.Now())
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &NewGameOutput{State: updated.State, Narrative: opening}, nil
}

// GetState returns the current session state without mutating anything.
func (o *orchestrator) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	got, err := o.sessions.Get(ctx, &session.GetInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	return &GetStateOutput{State: got.State}, nil
}

// narrate calls the narrator and falls back to templated prose on failure.
// The mechanical result has already been committed by the time this runs.
func (o *orchestrator) narrate(ctx context.Context, input *narrative.GenerateInput, fallback string) string {
	out, err := o.narrator.Generate(ctx, input)
	if err != nil {
		slog.Warn("narrator unavailable, using fallback narration",
			"kind", input.Kind,
			"error", err,
		)
		return fallback
	}
	return out.Text
}
