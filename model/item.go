package model

// Item is one item, or one version of a versioned item page.
type Item struct {
	ID          *int    `json:"id" yaml:"id"`
	Name        *string `json:"name" yaml:"name"`
	WikiName    *string `json:"wiki_name" yaml:"wiki_name"`
	Members     bool    `json:"members" yaml:"members"`
	ReleaseDate *string `json:"release_date" yaml:"release_date"`
	QuestItem   bool    `json:"quest_item" yaml:"quest_item"`
	Tradeable   bool    `json:"tradeable" yaml:"tradeable"`
	Equipable   bool    `json:"equipable" yaml:"equipable"`
	Stackable   bool    `json:"stackable" yaml:"stackable"`
	Noteable    bool    `json:"noteable" yaml:"noteable"`
	Cost        *int    `json:"cost" yaml:"cost"`
	// Weight is kept as text; the wiki writes fractional and unit-suffixed
	// weights.
	Weight  *string `json:"weight" yaml:"weight"`
	Examine *string `json:"examine" yaml:"examine"`
	WikiURL *string `json:"wiki_url" yaml:"wiki_url"`

	// Stats is nil when the page has no bonuses infobox.
	Stats *EquipmentStats `json:"stats" yaml:"stats"`
}

// EquipmentStats are the bonuses of an equipable item.
type EquipmentStats struct {
	AttackStab     *int    `json:"attack_stab" yaml:"attack_stab"`
	AttackSlash    *int    `json:"attack_slash" yaml:"attack_slash"`
	AttackCrush    *int    `json:"attack_crush" yaml:"attack_crush"`
	AttackMagic    *int    `json:"attack_magic" yaml:"attack_magic"`
	AttackRanged   *int    `json:"attack_ranged" yaml:"attack_ranged"`
	DefenceStab    *int    `json:"defence_stab" yaml:"defence_stab"`
	DefenceSlash   *int    `json:"defence_slash" yaml:"defence_slash"`
	DefenceCrush   *int    `json:"defence_crush" yaml:"defence_crush"`
	DefenceMagic   *int    `json:"defence_magic" yaml:"defence_magic"`
	DefenceRanged  *int    `json:"defence_ranged" yaml:"defence_ranged"`
	MeleeStrength  *int    `json:"melee_strength" yaml:"melee_strength"`
	RangedStrength *int    `json:"ranged_strength" yaml:"ranged_strength"`
	MagicDamage    *int    `json:"magic_damage" yaml:"magic_damage"`
	Prayer         *int    `json:"prayer" yaml:"prayer"`
	Slot           *string `json:"slot" yaml:"slot"`
	AttackSpeed    *int    `json:"attack_speed" yaml:"attack_speed"`
}

// RecordID returns the item id.
func (i *Item) RecordID() *int { return i.ID }

// Validate checks that the item has a usable id.
func (i *Item) Validate() error {
	return validate(i.ID)
}
