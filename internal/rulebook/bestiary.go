package rulebook

import (
	"sort"

	"github.com/tavernkeep/gm-engine/internal/entities"
	"github.com/tavernkeep/gm-engine/internal/errors"
)

// Starter bestiary. Stat blocks are templates; NewMonster stamps instances
// with fresh IDs and full HP.
var bestiary = map[string]entities.Monster{
	"goblin": {
		TypeID: "goblin", Name: "Goblin", Level: 1,
		Attributes: entities.Attributes{Strength: 8, Dexterity: 13, Vitality: 9, Intelligence: 8, Spirit: 7, Luck: 10},
		MaxHP:      6, Defense: 13, Attack: 2,
		DamageDice: "1d6", DamageType: "Slashing", CritRange: 20, CritMultiplier: 2,
		XPReward: 25,
		Loot: []entities.LootEntry{
			{Chance: 0.5, Item: entities.Item{ID: "item_rusty_dagger", Name: "Rusty Dagger", Kind: entities.ItemWeapon, Value: 1,
				Weapon: &entities.WeaponData{DamageDice: "1d4", DamageType: "Piercing", CritRange: 20, CritMultiplier: 2}}},
		},
		Description: "A wiry green-skinned raider, all teeth and bad intentions.",
	},
	"wolf": {
		TypeID: "wolf", Name: "Wolf", Level: 1,
		Attributes: entities.Attributes{Strength: 12, Dexterity: 14, Vitality: 12, Intelligence: 3, Spirit: 11, Luck: 10},
		MaxHP:      11, Defense: 13, Attack: 3,
		DamageDice: "2d4", DamageType: "Piercing", CritRange: 20, CritMultiplier: 2,
		XPReward: 50,
		Description: "A lean gray hunter that circles before it lunges.",
	},
	"bandit": {
		TypeID: "bandit", Name: "Bandit", Level: 2,
		Attributes: entities.Attributes{Strength: 12, Dexterity: 12, Vitality: 12, Intelligence: 10, Spirit: 10, Luck: 9},
		MaxHP:      16, Defense: 14, Attack: 4,
		DamageDice: "1d8", DamageType: "Slashing", CritRange: 20, CritMultiplier: 2,
		XPReward: 100,
		Loot: []entities.LootEntry{
			{Chance: 0.75, Item: entities.Item{ID: "item_coin_pouch", Name: "Coin Pouch", Kind: entities.ItemConsumable, Value: 12,
				Consumable: &entities.ConsumableData{Effect: "gold:12"}}},
		},
		Description: "A road-worn cutthroat with a notched blade.",
	},
	"skeleton": {
		TypeID: "skeleton", Name: "Skeleton", Level: 2,
		Attributes: entities.Attributes{Strength: 11, Dexterity: 14, Vitality: 15, Intelligence: 6, Spirit: 5, Luck: 8},
		MaxHP:      13, Defense: 13, Attack: 3,
		DamageDice: "1d6", DamageType: "Slashing", CritRange: 20, CritMultiplier: 2,
		Abilities: []string{"Undead Fortitude"},
		XPReward:  100,
		Description: "Old bones held together by older magic.",
	},
}

// MonsterTypes lists the bestiary keys in stable order.
func MonsterTypes() []string {
	types := make([]string, 0, len(bestiary))
	for typeID := range bestiary {
		types = append(types, typeID)
	}
	sort.Strings(types)
	return types
}

// NewMonster instantiates a bestiary template into an encounter-ready
// monster with the given instance ID.
func NewMonster(id, typeID string) (*entities.Monster, error) {
	template, ok := bestiary[typeID]
	if !ok {
		return nil, errors.NotFoundf("unknown monster type: %s", typeID)
	}

	monster := template
	monster.ID = id
	monster.HP = monster.MaxHP
	monster.MP = monster.MaxMP

	// Deep-copy slices so encounter instances never share loot or abilities
	// with the template.
	monster.Abilities = append([]string(nil), template.Abilities...)
	monster.Loot = append([]entities.LootEntry(nil), template.Loot...)

	return &monster, nil
}
