package entities

// Race identifies a playable race.
type Race string

// Playable races.
const (
	RaceHuman    Race = "Human"
	RaceElf      Race = "Elf"
	RaceDwarf    Race = "Dwarf"
	RaceGnome    Race = "Gnome"
	RaceHalfling Race = "Halfling"
	RaceHalfElf  Race = "Half-Elf"
)

// Class identifies a character class.
type Class string

// Character classes.
const (
	ClassFighter Class = "Fighter"
	ClassWizard  Class = "Wizard"
	ClassPriest  Class = "Priest"
	ClassRogue   Class = "Rogue"
	ClassRanger  Class = "Ranger"
)

// SkillType identifies a trained skill.
type SkillType string

// Skills. The list follows the tabletop ruleset's skill table.
const (
	SkillSword      SkillType = "Sword"
	SkillBow        SkillType = "Bow"
	SkillDodge      SkillType = "Dodge"
	SkillStealth    SkillType = "Stealth"
	SkillLockpick   SkillType = "Lockpicking"
	SkillMagic      SkillType = "Magic"
	SkillHealing    SkillType = "Healing"
	SkillPerception SkillType = "Perception"
	SkillSurvival   SkillType = "Survival"
	SkillPersuade   SkillType = "Persuade"
	SkillIntimidate SkillType = "Intimidate"
	SkillDeceive    SkillType = "Deceive"
)

// Attributes holds the six core attribute scores.
type Attributes struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Vitality     int `json:"vitality"`
	Intelligence int `json:"intelligence"`
	Spirit       int `json:"spirit"`
	Luck         int `json:"luck"`
}

// AttributeName identifies a single core attribute for ability checks.
type AttributeName string

// Attribute names.
const (
	AttrStrength     AttributeName = "strength"
	AttrDexterity    AttributeName = "dexterity"
	AttrVitality     AttributeName = "vitality"
	AttrIntelligence AttributeName = "intelligence"
	AttrSpirit       AttributeName = "spirit"
	AttrLuck         AttributeName = "luck"
)

// Score returns the score for the named attribute, or 0 for an unknown name.
func (a Attributes) Score(name AttributeName) int {
	switch name {
	case AttrStrength:
		return a.Strength
	case AttrDexterity:
		return a.Dexterity
	case AttrVitality:
		return a.Vitality
	case AttrIntelligence:
		return a.Intelligence
	case AttrSpirit:
		return a.Spirit
	case AttrLuck:
		return a.Luck
	default:
		return 0
	}
}

// Modifier converts an attribute score to its check modifier (score / 3,
// rounded down), per the ruleset.
func Modifier(score int) int {
	return score / 3
}
