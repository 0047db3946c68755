// Package engine implements the skill and combat resolver: a turn-based
// state machine over the entity model and the dice core. All outcomes are
// mechanical; narration happens elsewhere, after results are committed.
package engine

import (
	"github.com/tavernkeep/gm-engine/internal/dice"
	"github.com/tavernkeep/gm-engine/internal/errors"
)

// Config holds the resolver's dependencies.
type Config struct {
	Roller *dice.Roller
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Engine resolves skill checks and combat turns. Deterministic when built
// over a seeded roller.
type Engine struct {
	roller *dice.Roller
}

// New creates a resolver with the provided dependencies.
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{roller: cfg.Roller}, nil
}
