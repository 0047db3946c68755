package entities

import (
	"github.com/tavernkeep/gm-engine/internal/errors"
)

// Equipment holds the character's occupied equipment slots. One weapon, one
// armor, up to two accessories.
type Equipment struct {
	Weapon      *Item   `json:"weapon,omitempty"`
	Armor       *Item   `json:"armor,omitempty"`
	Accessories []*Item `json:"accessories,omitempty"` // at most maxAccessories
}

const maxAccessories = 2

// CharacterSheet is a player or party-member character. Derived stats
// (MaxHP, MaxMP, Defense, Attack) are recomputed wholesale from attributes,
// level, and equipment; they are never patched incrementally.
type CharacterSheet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Race       Race   `json:"race"`
	Class      Class  `json:"class"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`

	Attributes Attributes `json:"attributes"`

	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	MP      int `json:"mp"`
	MaxMP   int `json:"max_mp"`
	Defense int `json:"defense"`
	Attack  int `json:"attack_bonus"`

	Skills    map[SkillType]int `json:"skills,omitempty"`
	Spells    []Spell           `json:"spells,omitempty"`
	Inventory []Item            `json:"inventory,omitempty"`
	Equipped  Equipment         `json:"equipped"`

	Backstory       string `json:"backstory,omitempty"`
	AdventureReason string `json:"adventure_reason,omitempty"`
}

// EffectiveAttributes returns base attributes with equipped accessory
// bonuses applied. Derived-stat formulas read these, not the base scores.
func (c *CharacterSheet) EffectiveAttributes() Attributes {
	attrs := c.Attributes
	for _, acc := range c.Equipped.Accessories {
		if acc == nil || acc.Accessory == nil {
			continue
		}
		for name, bonus := range acc.Accessory.AttributeBonuses {
			switch name {
			case AttrStrength:
				attrs.Strength += bonus
			case AttrDexterity:
				attrs.Dexterity += bonus
			case AttrVitality:
				attrs.Vitality += bonus
			case AttrIntelligence:
				attrs.Intelligence += bonus
			case AttrSpirit:
				attrs.Spirit += bonus
			case AttrLuck:
				attrs.Luck += bonus
			}
		}
	}
	return attrs
}

// RecomputeDerivedStats recalculates MaxHP, MaxMP, Defense, and Attack from
// scratch. Current HP and MP are clamped to the new maxima but otherwise
// untouched, so equipping armor never heals anyone.
func (c *CharacterSheet) RecomputeDerivedStats() {
	attrs := c.EffectiveAttributes()

	var baseHP int
	switch c.Class {
	case ClassFighter:
		baseHP = 10 + max(1, attrs.Vitality/2)
	case ClassWizard:
		baseHP = 4 + max(1, attrs.Vitality/4)
	case ClassPriest:
		baseHP = 6 + max(1, attrs.Vitality/3)
	default:
		baseHP = 8 + max(1, attrs.Vitality/3)
	}
	c.MaxHP = baseHP + (c.Level-1)*max(1, attrs.Vitality/3)
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}

	switch c.Class {
	case ClassWizard:
		c.MaxMP = 6 + max(1, attrs.Intelligence/2) + (c.Level-1)*max(1, attrs.Intelligence/3)
	case ClassPriest:
		c.MaxMP = 6 + max(1, attrs.Spirit/2) + (c.Level-1)*max(1, attrs.Spirit/3)
	default:
		c.MaxMP = 0
	}
	if c.MP > c.MaxMP {
		c.MP = c.MaxMP
	}

	armorBonus := 0
	if c.Equipped.Armor != nil && c.Equipped.Armor.Armor != nil {
		armorBonus = c.Equipped.Armor.Armor.ArmorBonus
	}
	c.Defense = 10 + attrs.Dexterity/2 + armorBonus

	c.Attack = c.Level/2 + attrs.Strength/3
}

// Equip places an item into its slot, enforcing slot exclusivity, then
// recomputes derived stats.
func (c *CharacterSheet) Equip(item *Item) error {
	if item == nil {
		return errors.InvalidArgument("item cannot be nil")
	}
	if !item.Equippable() {
		return errors.InvalidArgumentf("item %q of kind %s cannot be equipped", item.Name, item.Kind)
	}

	switch item.Kind {
	case ItemWeapon:
		if c.Equipped.Weapon != nil {
			return errors.AlreadyExistsf("weapon slot is occupied by %q", c.Equipped.Weapon.Name)
		}
		c.Equipped.Weapon = item
	case ItemArmor:
		if c.Equipped.Armor != nil {
			return errors.AlreadyExistsf("armor slot is occupied by %q", c.Equipped.Armor.Name)
		}
		c.Equipped.Armor = item
	case ItemAccessory:
		if len(c.Equipped.Accessories) >= maxAccessories {
			return errors.AlreadyExistsf("both accessory slots are occupied")
		}
		c.Equipped.Accessories = append(c.Equipped.Accessories, item)
	}

	c.RecomputeDerivedStats()
	return nil
}

// Unequip removes the item with the given ID from whatever slot holds it,
// then recomputes derived stats.
func (c *CharacterSheet) Unequip(itemID string) error {
	switch {
	case c.Equipped.Weapon != nil && c.Equipped.Weapon.ID == itemID:
		c.Equipped.Weapon = nil
	case c.Equipped.Armor != nil && c.Equipped.Armor.ID == itemID:
		c.Equipped.Armor = nil
	default:
		found := false
		for i, acc := range c.Equipped.Accessories {
			if acc != nil && acc.ID == itemID {
				c.Equipped.Accessories = append(c.Equipped.Accessories[:i], c.Equipped.Accessories[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return errors.FailedPreconditionf("item %s is not equipped", itemID)
		}
	}

	c.RecomputeDerivedStats()
	return nil
}

// TakeDamage applies damage, clamping HP at zero.
func (c *CharacterSheet) TakeDamage(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
}

// Heal restores hit points, clamping at MaxHP.
func (c *CharacterSheet) Heal(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// SpendMP deducts spell cost. When MP is insufficient nothing is deducted.
func (c *CharacterSheet) SpendMP(cost int) error {
	if cost < 0 {
		return errors.InvalidArgument("MP cost cannot be negative")
	}
	if c.MP < cost {
		return errors.ResourceExhaustedf("insufficient MP: have %d, need %d", c.MP, cost)
	}
	c.MP -= cost
	return nil
}

// IsAlive reports whether the character has hit points left. Always derived
// from current HP; there is no stored alive flag to go stale.
func (c *CharacterSheet) IsAlive() bool {
	return c.HP > 0
}

// AddToInventory appends an item to the character's inventory.
func (c *CharacterSheet) AddToInventory(item Item) {
	c.Inventory = append(c.Inventory, item)
}

// RemoveFromInventory removes the first inventory item with the given ID.
func (c *CharacterSheet) RemoveFromInventory(itemID string) bool {
	for i, item := range c.Inventory {
		if item.ID == itemID {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Combatant interface implementation.

// DisplayName implements Combatant.
func (c *CharacterSheet) DisplayName() string {
	return c.Name
}

// CurrentHP implements Combatant.
func (c *CharacterSheet) CurrentHP() int {
	return c.HP
}

// MaxHitPoints implements Combatant.
func (c *CharacterSheet) MaxHitPoints() int {
	return c.MaxHP
}

// DefenseValue implements Combatant.
func (c *CharacterSheet) DefenseValue() int {
	return c.Defense
}

// AttackBonusValue implements Combatant.
func (c *CharacterSheet) AttackBonusValue() int {
	return c.Attack
}

// WeaponDice implements Combatant, returning the equipped weapon's damage
// dice or the unarmed default.
func (c *CharacterSheet) WeaponDice() string {
	if c.Equipped.Weapon != nil && c.Equipped.Weapon.Weapon != nil {
		return c.Equipped.Weapon.Weapon.DamageDice
	}
	return defaultDamageDice
}

// CritProfile implements Combatant, reading the equipped weapon's critical
// threshold and multiplier, or the unarmed defaults.
func (c *CharacterSheet) CritProfile() (int, int) {
	threshold, multiplier := 20, 2
	if c.Equipped.Weapon != nil && c.Equipped.Weapon.Weapon != nil {
		w := c.Equipped.Weapon.Weapon
		if w.CritRange > 0 {
			threshold = w.CritRange
		}
		if w.CritMultiplier > 0 {
			multiplier = w.CritMultiplier
		}
	}
	return threshold, multiplier
}

// Dexterity implements Combatant for initiative tie-breaks.
func (c *CharacterSheet) Dexterity() int {
	return c.EffectiveAttributes().Dexterity
}
