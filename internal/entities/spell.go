package entities

// SpellEffect identifies what a spell does when it resolves.
type SpellEffect string

// Spell effects.
const (
	EffectDamage SpellEffect = "damage"
	EffectHeal   SpellEffect = "heal"
)

// Spell describes a castable spell. Character sheets reference spells; they
// never own them.
type Spell struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Level       int         `json:"level"`
	Class       Class       `json:"class"`
	MPCost      int         `json:"mp_cost"`
	Range       string      `json:"range"` // e.g. "Touch", "30 feet"
	Effect      SpellEffect `json:"effect"`
	EffectDice  string      `json:"effect_dice"` // e.g. "2d6"
	Description string      `json:"description,omitempty"`
}
