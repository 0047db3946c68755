package engine

import (
	"github.com/tavernkeep/gm-engine/internal/entities"
)

// ActionKind classifies a combat turn action.
type ActionKind string

// Combat action kinds the resolver understands. Anything else is rejected
// before any state mutation.
const (
	ActionAttack ActionKind = "attack"
	ActionSpell  ActionKind = "spell"
)

// Action is one combatant's declared turn.
type Action struct {
	Kind    ActionKind
	Target  entities.CombatantRef
	SpellID string // required when Kind == ActionSpell
}

// SkillCheckResult carries everything narration needs: the raw roll, the
// total, and the margin over (or under) the difficulty.
type SkillCheckResult struct {
	Skill      entities.SkillType
	Difficulty int
	Roll       int
	Bonus      int
	Total      int
	Success    bool
	Margin     int
}

// AbilityCheckResult is the attribute-check counterpart of SkillCheckResult.
type AbilityCheckResult struct {
	Attribute  entities.AttributeName
	Difficulty int
	Roll       int
	Bonus      int
	Total      int
	Success    bool
	Margin     int
}

// AttackResult is the structured outcome of one attack.
type AttackResult struct {
	Attacker    string
	Target      string
	AttackRoll  int // natural d20
	AttackTotal int
	Hit         bool
	Crit        bool
	Fumble      bool
	Damage      int
	DamageDice  string
	TargetHP    int
	TargetMaxHP int
	TargetDown  bool
}

// SpellResult is the structured outcome of one spell cast, symmetrical to
// AttackResult.
type SpellResult struct {
	Caster      string
	SpellName   string
	Target      string
	MPCost      int
	CasterMP    int
	Effect      entities.SpellEffect
	Amount      int // damage dealt or HP restored
	TargetHP    int
	TargetMaxHP int
	TargetDown  bool
}

// TurnResult is the committed outcome of one ProcessTurn call.
type TurnResult struct {
	Actor  entities.CombatantRef
	Attack *AttackResult
	Spell  *SpellResult

	Ended   bool
	Outcome string // victory, defeat, mutual_defeat; empty while ongoing

	Next  *entities.CombatantRef // nil once the encounter has ended
	Round int
}

// StartCombatResult reports the rolled initiative order.
type StartCombatResult struct {
	Order []entities.InitiativeEntry
	First entities.CombatantRef
}

// Encounter outcomes.
const (
	OutcomeVictory      = "victory"
	OutcomeDefeat       = "defeat"
	OutcomeMutualDefeat = "mutual_defeat"
)
