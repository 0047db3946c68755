// Package rulebook holds the game's numeric rules: character generation,
// racial and class modifiers, starting kits, and the starter bestiary. The
// entity model computes derived stats; everything that decides which numbers
// go onto a fresh sheet lives here.
package rulebook

import (
	"github.com/tavernkeep/gm-engine/internal/dice"
	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
)

// GenerateInput describes a new character request. HistoryChoice and
// AdventureChoice are optional 2d6-range picks (2-12); zero means roll.
type GenerateInput struct {
	ID              string
	Name            string
	Race            entities.Race
	Class           entities.Class
	HistoryChoice   int
	AdventureChoice int
}

// Validate checks the generation request.
func (in *GenerateInput) Validate() error {
	vb := errors.NewValidationBuilder()

	if in.ID == "" {
		vb.RequiredField("ID")
	}
	if in.Name == "" {
		vb.RequiredField("Name")
	}
	if !validRace(in.Race) {
		vb.InvalidField("Race", "unknown race "+string(in.Race))
	}
	if !validClass(in.Class) {
		vb.InvalidField("Class", "unknown class "+string(in.Class))
	}
	if in.HistoryChoice != 0 && (in.HistoryChoice < 2 || in.HistoryChoice > 12) {
		vb.InvalidField("HistoryChoice", "must be between 2 and 12")
	}
	if in.AdventureChoice != 0 && (in.AdventureChoice < 2 || in.AdventureChoice > 12) {
		vb.InvalidField("AdventureChoice", "must be between 2 and 12")
	}

	return vb.Build()
}

func validRace(r entities.Race) bool {
	switch r {
	case entities.RaceHuman, entities.RaceElf, entities.RaceDwarf,
		entities.RaceGnome, entities.RaceHalfling, entities.RaceHalfElf:
		return true
	}
	return false
}

func validClass(c entities.Class) bool {
	switch c {
	case entities.ClassFighter, entities.ClassWizard, entities.ClassPriest,
		entities.ClassRogue, entities.ClassRanger:
		return true
	}
	return false
}

// RollAttributes rolls 3d6 per attribute and applies racial and class
// modifiers, flooring every score at 1.
func RollAttributes(roller *dice.Roller, race entities.Race, class entities.Class) entities.Attributes {
	threeD6 := func() int {
		return roller.D6() + roller.D6() + roller.D6()
	}

	attrs := entities.Attributes{
		Strength:     threeD6(),
		Dexterity:    threeD6(),
		Vitality:     threeD6(),
		Intelligence: threeD6(),
		Spirit:       threeD6(),
		Luck:         threeD6(),
	}

	switch race {
	case entities.RaceHuman:
		attrs.Strength++
		attrs.Dexterity++
		attrs.Vitality++
		attrs.Intelligence++
		attrs.Spirit++
		attrs.Luck++
	case entities.RaceElf:
		attrs.Dexterity++
		attrs.Intelligence++
		attrs.Vitality--
	case entities.RaceDwarf:
		attrs.Strength++
		attrs.Vitality++
		attrs.Dexterity--
	case entities.RaceHalfling:
		attrs.Dexterity++
		attrs.Spirit++
		attrs.Strength--
	case entities.RaceGnome:
		attrs.Intelligence++
		attrs.Luck++
		attrs.Strength--
	case entities.RaceHalfElf:
		attrs.Dexterity++
		attrs.Spirit++
	}

	switch class {
	case entities.ClassFighter:
		attrs.Strength += 2
		attrs.Vitality++
	case entities.ClassWizard:
		attrs.Intelligence += 2
		attrs.Spirit++
	case entities.ClassPriest:
		attrs.Spirit += 2
		attrs.Vitality++
	case entities.ClassRogue:
		attrs.Dexterity += 2
		attrs.Intelligence++
	case entities.ClassRanger:
		attrs.Dexterity += 2
		attrs.Vitality++
	}

	floor := func(v int) int { return max(1, v) }
	attrs.Strength = floor(attrs.Strength)
	attrs.Dexterity = floor(attrs.Dexterity)
	attrs.Vitality = floor(attrs.Vitality)
	attrs.Intelligence = floor(attrs.Intelligence)
	attrs.Spirit = floor(attrs.Spirit)
	attrs.Luck = floor(attrs.Luck)

	return attrs
}

// StartingSkills returns the class's starting skill kit.
func StartingSkills(class entities.Class) map[entities.SkillType]int {
	skills := map[entities.SkillType]int{
		entities.SkillPerception: 1,
		entities.SkillSurvival:   1,
	}

	switch class {
	case entities.ClassFighter:
		skills[entities.SkillSword] = 2
		skills[entities.SkillDodge] = 1
	case entities.ClassWizard:
		skills[entities.SkillMagic] = 3
	case entities.ClassPriest:
		skills[entities.SkillHealing] = 2
		skills[entities.SkillPersuade] = 1
	case entities.ClassRogue:
		skills[entities.SkillStealth] = 3
		skills[entities.SkillLockpick] = 2
		skills[entities.SkillDeceive] = 1
	case entities.ClassRanger:
		skills[entities.SkillBow] = 2
		skills[entities.SkillStealth] = 1
	}

	return skills
}

// StartingSpells returns the class's starter spells, if it casts at all.
func StartingSpells(class entities.Class) []entities.Spell {
	switch class {
	case entities.ClassWizard:
		return []entities.Spell{
			{
				ID: "spell_magic_arrow", Name: "Magic Arrow", Level: 1,
				Class: entities.ClassWizard, MPCost: 2, Range: "30 feet",
				Effect: entities.EffectDamage, EffectDice: "2d6",
				Description: "A bolt of force streaks toward the target.",
			},
		}
	case entities.ClassPriest:
		return []entities.Spell{
			{
				ID: "spell_cure_wounds", Name: "Cure Wounds", Level: 1,
				Class: entities.ClassPriest, MPCost: 3, Range: "Touch",
				Effect: entities.EffectHeal, EffectDice: "2d6",
				Description: "Divine light knits flesh back together.",
			},
		}
	default:
		return nil
	}
}

// StartingEquipment returns the class's starting gear; equippable pieces are
// equipped by NewCharacter, the rest lands in the inventory.
func StartingEquipment(class entities.Class) []entities.Item {
	switch class {
	case entities.ClassFighter:
		return []entities.Item{
			{ID: "item_longsword", Name: "Longsword", Kind: entities.ItemWeapon, Value: 15,
				Weapon: &entities.WeaponData{DamageDice: "1d8", DamageType: "Slashing", CritRange: 20, CritMultiplier: 2}},
			{ID: "item_chain_shirt", Name: "Chain Shirt", Kind: entities.ItemArmor, Value: 50,
				Armor: &entities.ArmorData{ArmorBonus: 3, ArmorPenalty: 1}},
		}
	case entities.ClassWizard:
		return []entities.Item{
			{ID: "item_quarterstaff", Name: "Quarterstaff", Kind: entities.ItemWeapon, Value: 2,
				Weapon: &entities.WeaponData{DamageDice: "1d6", DamageType: "Bludgeoning", CritRange: 20, CritMultiplier: 2}},
		}
	case entities.ClassPriest:
		return []entities.Item{
			{ID: "item_mace", Name: "Mace", Kind: entities.ItemWeapon, Value: 8,
				Weapon: &entities.WeaponData{DamageDice: "1d6", DamageType: "Bludgeoning", CritRange: 20, CritMultiplier: 2}},
			{ID: "item_leather_armor", Name: "Leather Armor", Kind: entities.ItemArmor, Value: 10,
				Armor: &entities.ArmorData{ArmorBonus: 2}},
		}
	case entities.ClassRogue:
		return []entities.Item{
			{ID: "item_dagger", Name: "Dagger", Kind: entities.ItemWeapon, Value: 2,
				Weapon: &entities.WeaponData{DamageDice: "1d4", DamageType: "Piercing", CritRange: 19, CritMultiplier: 2}},
			{ID: "item_leather_armor", Name: "Leather Armor", Kind: entities.ItemArmor, Value: 10,
				Armor: &entities.ArmorData{ArmorBonus: 2}},
		}
	case entities.ClassRanger:
		return []entities.Item{
			{ID: "item_shortbow", Name: "Shortbow", Kind: entities.ItemWeapon, Value: 25,
				Weapon: &entities.WeaponData{DamageDice: "1d6", DamageType: "Piercing", CritRange: 20, CritMultiplier: 2}},
			{ID: "item_leather_armor", Name: "Leather Armor", Kind: entities.ItemArmor, Value: 10,
				Armor: &entities.ArmorData{ArmorBonus: 2}},
		}
	default:
		return nil
	}
}

// NewCharacter rolls and assembles a complete level-one character sheet:
// attributes, skills, spells, background, equipped starting gear, and fully
// computed derived stats.
func NewCharacter(roller *dice.Roller, in *GenerateInput) (*entities.CharacterSheet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	historyRoll := in.HistoryChoice
	if historyRoll == 0 {
		historyRoll = roller.TwoD6()
	}
	adventureRoll := in.AdventureChoice
	if adventureRoll == 0 {
		adventureRoll = roller.TwoD6()
	}

	sheet := &entities.CharacterSheet{
		ID:              in.ID,
		Name:            in.Name,
		Race:            in.Race,
		Class:           in.Class,
		Level:           1,
		Attributes:      RollAttributes(roller, in.Race, in.Class),
		Skills:          StartingSkills(in.Class),
		Spells:          StartingSpells(in.Class),
		Backstory:       HistoryBackground(historyRoll),
		AdventureReason: AdventureReason(adventureRoll),
	}

	for _, item := range StartingEquipment(in.Class) {
		item := item
		if item.Equippable() {
			if err := sheet.Equip(&item); err != nil {
				return nil, errors.Wrapf(err, "failed to equip starting %s", item.Name)
			}
			continue
		}
		sheet.AddToInventory(item)
	}

	sheet.RecomputeDerivedStats()
	sheet.HP = sheet.MaxHP
	sheet.MP = sheet.MaxMP

	return sheet, nil
}
