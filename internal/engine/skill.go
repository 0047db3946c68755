package engine

import (
	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
)

// PerformSkillCheck rolls d20 + skill level against a difficulty. Untrained
// skills contribute 0. The margin is kept for degree-of-success narration.
func (e *Engine) PerformSkillCheck(character *entities.CharacterSheet, skill entities.SkillType, difficulty int) (*SkillCheckResult, error) {
	if character == nil {
		return nil, errors.InvalidArgument("character cannot be nil")
	}
	if difficulty <= 0 {
		return nil, errors.InvalidArgumentf("difficulty must be positive, got %d", difficulty)
	}

	bonus := character.Skills[skill]
	roll := e.roller.D20()
	total := roll + bonus

	return &SkillCheckResult{
		Skill:      skill,
		Difficulty: difficulty,
		Roll:       roll,
		Bonus:      bonus,
		Total:      total,
		Success:    total >= difficulty,
		Margin:     total - difficulty,
	}, nil
}

// PerformAbilityCheck rolls d20 + attribute modifier against a difficulty.
// Accessory bonuses count: checks read effective attributes.
func (e *Engine) PerformAbilityCheck(character *entities.CharacterSheet, attr entities.AttributeName, difficulty int) (*AbilityCheckResult, error) {
	if character == nil {
		return nil, errors.InvalidArgument("character cannot be nil")
	}
	if difficulty <= 0 {
		return nil, errors.InvalidArgumentf("difficulty must be positive, got %d", difficulty)
	}

	score := character.EffectiveAttributes().Score(attr)
	if score == 0 {
		return nil, errors.InvalidArgumentf("unknown attribute: %s", attr)
	}

	bonus := entities.Modifier(score)
	roll := e.roller.D20()
	total := roll + bonus

	return &AbilityCheckResult{
		Attribute:  attr,
		Difficulty: difficulty,
		Roll:       roll,
		Bonus:      bonus,
		Total:      total,
		Success:    total >= difficulty,
		Margin:     total - difficulty,
	}, nil
}
