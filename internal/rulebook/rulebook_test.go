package rulebook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavernkeep/gm-engine/internal/dice"
	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
	"github.com/tavernkeep/gm-engine/internal/rulebook"
)

func TestRollAttributesBoundsAndDeterminism(t *testing.T) {
	a := rulebook.RollAttributes(dice.NewSeeded(99), entities.RaceDwarf, entities.ClassFighter)
	b := rulebook.RollAttributes(dice.NewSeeded(99), entities.RaceDwarf, entities.ClassFighter)
	assert.Equal(t, a, b, "same seed must reproduce the same attributes")

	for i := 0; i < 50; i++ {
		attrs := rulebook.RollAttributes(dice.New(), entities.RaceHalfling, entities.ClassRogue)
		for name, v := range map[string]int{
			"strength": attrs.Strength, "dexterity": attrs.Dexterity,
			"vitality": attrs.Vitality, "intelligence": attrs.Intelligence,
			"spirit": attrs.Spirit, "luck": attrs.Luck,
		} {
			assert.GreaterOrEqual(t, v, 1, "%s floored at 1", name)
			assert.LessOrEqual(t, v, 22, "%s cannot exceed 3d6 plus modifiers", name)
		}
	}
}

func TestNewCharacterAssemblesFullSheet(t *testing.T) {
	sheet, err := rulebook.NewCharacter(dice.NewSeeded(7), &rulebook.GenerateInput{
		ID:    "char_test",
		Name:  "Aldric",
		Race:  entities.RaceHuman,
		Class: entities.ClassFighter,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sheet.Level)
	assert.Equal(t, sheet.MaxHP, sheet.HP)
	assert.True(t, sheet.IsAlive())
	assert.NotEmpty(t, sheet.Backstory)
	assert.NotEmpty(t, sheet.AdventureReason)
	assert.Equal(t, 2, sheet.Skills[entities.SkillSword])

	require.NotNil(t, sheet.Equipped.Weapon, "fighter starts armed")
	require.NotNil(t, sheet.Equipped.Armor, "fighter starts armored")
	assert.Equal(t, "1d8", sheet.WeaponDice())
}

func TestNewCharacterCasterKits(t *testing.T) {
	wizard, err := rulebook.NewCharacter(dice.NewSeeded(3), &rulebook.GenerateInput{
		ID: "char_w", Name: "Mira", Race: entities.RaceElf, Class: entities.ClassWizard,
	})
	require.NoError(t, err)
	require.Len(t, wizard.Spells, 1)
	assert.Equal(t, entities.EffectDamage, wizard.Spells[0].Effect)
	assert.Positive(t, wizard.MaxMP)
	assert.Equal(t, wizard.MaxMP, wizard.MP)

	priest, err := rulebook.NewCharacter(dice.NewSeeded(3), &rulebook.GenerateInput{
		ID: "char_p", Name: "Theron", Race: entities.RaceHuman, Class: entities.ClassPriest,
	})
	require.NoError(t, err)
	require.Len(t, priest.Spells, 1)
	assert.Equal(t, entities.EffectHeal, priest.Spells[0].Effect)
}

func TestNewCharacterHonorsBackgroundChoices(t *testing.T) {
	sheet, err := rulebook.NewCharacter(dice.NewSeeded(1), &rulebook.GenerateInput{
		ID: "char_c", Name: "Vex", Race: entities.RaceHuman, Class: entities.ClassRogue,
		HistoryChoice:   2,
		AdventureChoice: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, rulebook.HistoryBackground(2), sheet.Backstory)
	assert.Equal(t, rulebook.AdventureReason(12), sheet.AdventureReason)
}

func TestNewCharacterValidation(t *testing.T) {
	_, err := rulebook.NewCharacter(dice.New(), &rulebook.GenerateInput{
		ID: "char_x", Name: "Nameless", Race: "Tiefling", Class: entities.ClassFighter,
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = rulebook.NewCharacter(dice.New(), &rulebook.GenerateInput{
		ID: "char_x", Name: "", Race: entities.RaceHuman, Class: entities.ClassFighter,
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestBackgroundTableBounds(t *testing.T) {
	assert.Contains(t, rulebook.HistoryBackground(2), "Noble birth")
	assert.Contains(t, rulebook.HistoryBackground(12), "Survivor's instinct")
	// Out-of-range rolls clamp instead of panicking.
	assert.Equal(t, rulebook.HistoryBackground(2), rulebook.HistoryBackground(-3))
	assert.Equal(t, rulebook.AdventureReason(12), rulebook.AdventureReason(40))
}

func TestBestiaryInstantiation(t *testing.T) {
	types := rulebook.MonsterTypes()
	assert.Contains(t, types, "goblin")
	assert.Contains(t, types, "wolf")

	goblin, err := rulebook.NewMonster("mon_1", "goblin")
	require.NoError(t, err)
	assert.Equal(t, "mon_1", goblin.ID)
	assert.Equal(t, goblin.MaxHP, goblin.HP)
	assert.True(t, goblin.IsAlive())

	// Instances never share mutable slices with the template.
	second, err := rulebook.NewMonster("mon_2", "goblin")
	require.NoError(t, err)
	goblin.Loot[0].Chance = 1.0
	assert.NotEqual(t, goblin.Loot[0].Chance, second.Loot[0].Chance)

	_, err = rulebook.NewMonster("mon_3", "tarrasque")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
