package entities

// LootEntry is one row of a monster's loot table.
type LootEntry struct {
	Item   Item    `json:"item"`
	Chance float64 `json:"chance"` // 0.0 - 1.0
}

// Monster is a stat block instantiated into an encounter. The block itself
// is immutable once instantiated; only HP and MP change during combat.
type Monster struct {
	ID         string     `json:"id"`
	TypeID     string     `json:"type_id"` // bestiary key, e.g. "goblin"
	Name       string     `json:"name"`
	Level      int        `json:"level"`
	Attributes Attributes `json:"attributes"`

	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	MP      int `json:"mp"`
	MaxMP   int `json:"max_mp"`
	Defense int `json:"defense"`
	Attack  int `json:"attack_bonus"`

	DamageDice     string `json:"damage_dice"`
	DamageType     string `json:"damage_type"`
	CritRange      int    `json:"crit_range"`
	CritMultiplier int    `json:"crit_multiplier"`

	Abilities []string    `json:"abilities,omitempty"`
	Loot      []LootEntry `json:"loot,omitempty"`
	XPReward  int         `json:"xp_reward"`

	Description string `json:"description,omitempty"`
}

// DisplayName implements Combatant.
func (m *Monster) DisplayName() string {
	return m.Name
}

// CurrentHP implements Combatant.
func (m *Monster) CurrentHP() int {
	return m.HP
}

// MaxHitPoints implements Combatant.
func (m *Monster) MaxHitPoints() int {
	return m.MaxHP
}

// DefenseValue implements Combatant.
func (m *Monster) DefenseValue() int {
	return m.Defense
}

// AttackBonusValue implements Combatant.
func (m *Monster) AttackBonusValue() int {
	return m.Attack
}

// WeaponDice implements Combatant, returning the stat block's natural damage.
func (m *Monster) WeaponDice() string {
	if m.DamageDice == "" {
		return defaultDamageDice
	}
	return m.DamageDice
}

// CritProfile implements Combatant, returning the stat block's critical
// threshold and damage multiplier with sane defaults.
func (m *Monster) CritProfile() (int, int) {
	threshold, multiplier := m.CritRange, m.CritMultiplier
	if threshold <= 0 {
		threshold = 20
	}
	if multiplier <= 0 {
		multiplier = 2
	}
	return threshold, multiplier
}

// Dexterity implements Combatant for initiative tie-breaks.
func (m *Monster) Dexterity() int {
	return m.Attributes.Dexterity
}

// IsAlive reports whether the monster has hit points left. Derived from HP,
// never stored.
func (m *Monster) IsAlive() bool {
	return m.HP > 0
}

// TakeDamage applies damage, clamping HP at zero.
func (m *Monster) TakeDamage(amount int) {
	if amount < 0 {
		amount = 0
	}
	m.HP -= amount
	if m.HP < 0 {
		m.HP = 0
	}
}

// Heal restores hit points, clamping at MaxHP.
func (m *Monster) Heal(amount int) {
	if amount < 0 {
		amount = 0
	}
	m.HP += amount
	if m.HP > m.MaxHP {
		m.HP = m.MaxHP
	}
}
