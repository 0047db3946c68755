package entities

// Damage dice used when a combatant has neither a weapon nor natural attacks.
const defaultDamageDice = "1d4"

// Combatant is the view the combat resolver needs over characters and
// monsters. Damage flows through TakeDamage only, preserving the HP clamp.
type Combatant interface {
	DisplayName() string
	CurrentHP() int
	MaxHitPoints() int
	DefenseValue() int
	AttackBonusValue() int
	WeaponDice() string
	CritProfile() (threshold, multiplier int)
	Dexterity() int
	IsAlive() bool
	TakeDamage(amount int)
	Heal(amount int)
}

// CombatPhase is the combat state machine's current state.
type CombatPhase string

// Combat phases.
const (
	PhaseIdle             CombatPhase = "idle"
	PhaseInitiativeRolled CombatPhase = "initiative_rolled"
	PhaseTurnInProgress   CombatPhase = "turn_in_progress"
	PhaseAwaitingAction   CombatPhase = "awaiting_action_resolution"
	PhaseTurnComplete     CombatPhase = "turn_complete"
	PhaseEncounterEnded   CombatPhase = "encounter_ended"
)

// CombatSide distinguishes the two sides of an encounter.
type CombatSide string

// Combat sides.
const (
	SideParty   CombatSide = "party"
	SideEnemies CombatSide = "enemies"
)

// CombatantRef is a reference into the encounter's party or enemy list.
// CombatState never owns combatants; the GameState aggregate does.
type CombatantRef struct {
	Side  CombatSide `json:"side"`
	Index int        `json:"index"`
}

// InitiativeEntry is one slot of the initiative queue, kept with its roll
// for audit and narration.
type InitiativeEntry struct {
	Ref        CombatantRef `json:"ref"`
	Initiative int          `json:"initiative"`
	Name       string       `json:"name"`
}

// CombatState exists only during an active encounter. Order is a total
// ordering of combatant references; Turn points into it; Round counts wraps.
type CombatState struct {
	Phase   CombatPhase       `json:"phase"`
	Enemies []*Monster        `json:"enemies"`
	Order   []InitiativeEntry `json:"order"`
	Turn    int               `json:"turn"`
	Round   int               `json:"round"`
	Ended   bool              `json:"ended"`
	Outcome string            `json:"outcome,omitempty"` // victory, defeat, mutual_defeat
}

// Active reports whether the encounter is still being fought.
func (cs *CombatState) Active() bool {
	return cs != nil && !cs.Ended
}

// CurrentRef returns the reference of the combatant whose turn it is.
func (cs *CombatState) CurrentRef() CombatantRef {
	return cs.Order[cs.Turn].Ref
}
