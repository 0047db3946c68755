package entities

// ItemKind distinguishes item variants. Equip-slot logic switches
// exhaustively over kind; there is no inheritance hierarchy.
type ItemKind string

// Item kinds.
const (
	ItemWeapon     ItemKind = "weapon"
	ItemArmor      ItemKind = "armor"
	ItemAccessory  ItemKind = "accessory"
	ItemConsumable ItemKind = "consumable"
)

// EquipSlot identifies where an item sits when equipped.
type EquipSlot string

// Equipment slots. Accessories occupy one of two interchangeable slots.
const (
	SlotWeapon     EquipSlot = "weapon"
	SlotArmor      EquipSlot = "armor"
	SlotAccessory1 EquipSlot = "accessory_1"
	SlotAccessory2 EquipSlot = "accessory_2"
	SlotNone       EquipSlot = ""
)

// WeaponData is the weapon-specific payload of an Item.
type WeaponData struct {
	DamageDice     string `json:"damage_dice"` // e.g. "1d6", "2d4"
	DamageType     string `json:"damage_type"`
	CritRange      int    `json:"crit_range"`      // natural rolls >= this threaten a crit
	CritMultiplier int    `json:"crit_multiplier"` // damage multiplier on crit
	TwoHanded      bool   `json:"two_handed"`
}

// ArmorData is the armor-specific payload of an Item.
type ArmorData struct {
	ArmorBonus   int `json:"armor_bonus"` // added to defense
	ArmorPenalty int `json:"armor_penalty"`
}

// AccessoryData is the accessory-specific payload of an Item.
type AccessoryData struct {
	AttributeBonuses map[AttributeName]int `json:"attribute_bonuses,omitempty"`
	SkillBonuses     map[SkillType]int     `json:"skill_bonuses,omitempty"`
}

// ConsumableData is the consumable-specific payload of an Item.
type ConsumableData struct {
	Effect string `json:"effect"` // e.g. "heal:2d6"
}

// Item is a tagged variant over the item kinds. Exactly the payload matching
// Kind is non-nil.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        ItemKind `json:"kind"`
	Description string   `json:"description,omitempty"`
	Value       int      `json:"value"`
	Magical     bool     `json:"magical,omitempty"`

	Weapon     *WeaponData     `json:"weapon,omitempty"`
	Armor      *ArmorData      `json:"armor,omitempty"`
	Accessory  *AccessoryData  `json:"accessory,omitempty"`
	Consumable *ConsumableData `json:"consumable,omitempty"`
}

// Equippable reports whether the item can occupy an equipment slot.
func (i *Item) Equippable() bool {
	switch i.Kind {
	case ItemWeapon, ItemArmor, ItemAccessory:
		return true
	default:
		return false
	}
}
