package model

// Monster is one monster, or one version of a versioned monster page.
type Monster struct {
	ID           *int         `json:"id" yaml:"id"`
	Name         *string      `json:"name" yaml:"name"`
	WikiName     *string      `json:"wiki_name" yaml:"wiki_name"`
	Members      bool         `json:"members" yaml:"members"`
	ReleaseDate  *string      `json:"release_date" yaml:"release_date"`
	CombatLevel  *int         `json:"combat_level" yaml:"combat_level"`
	Hitpoints    *int         `json:"hitpoints" yaml:"hitpoints"`
	MaxHit       *int         `json:"max_hit" yaml:"max_hit"`
	AttackType   *string      `json:"attack_type" yaml:"attack_type"`
	AttackSpeed  *int         `json:"attack_speed" yaml:"attack_speed"`
	Aggressive   bool         `json:"aggressive" yaml:"aggressive"`
	Poisonous    bool         `json:"poisonous" yaml:"poisonous"`
	ImmunePoison *string      `json:"immune_poison" yaml:"immune_poison"`
	ImmuneVenom  *string      `json:"immune_venom" yaml:"immune_venom"`
	Weakness     *string      `json:"weakness" yaml:"weakness"`
	SlayerLevel  *int         `json:"slayer_level" yaml:"slayer_level"`
	SlayerXP     *int         `json:"slayer_xp" yaml:"slayer_xp"`
	Examine      *string      `json:"examine" yaml:"examine"`
	WikiURL      *string      `json:"wiki_url" yaml:"wiki_url"`
	Stats        MonsterStats `json:"stats" yaml:"stats"`
}

// MonsterStats holds combat levels and bonuses.
type MonsterStats struct {
	AttackLevel    *int `json:"attack_level" yaml:"attack_level"`
	StrengthLevel  *int `json:"strength_level" yaml:"strength_level"`
	DefenceLevel   *int `json:"defence_level" yaml:"defence_level"`
	MagicLevel     *int `json:"magic_level" yaml:"magic_level"`
	RangedLevel    *int `json:"ranged_level" yaml:"ranged_level"`
	AttackStab     *int `json:"attack_stab" yaml:"attack_stab"`
	AttackSlash    *int `json:"attack_slash" yaml:"attack_slash"`
	AttackCrush    *int `json:"attack_crush" yaml:"attack_crush"`
	AttackMagic    *int `json:"attack_magic" yaml:"attack_magic"`
	AttackRanged   *int `json:"attack_ranged" yaml:"attack_ranged"`
	DefenceStab    *int `json:"defence_stab" yaml:"defence_stab"`
	DefenceSlash   *int `json:"defence_slash" yaml:"defence_slash"`
	DefenceCrush   *int `json:"defence_crush" yaml:"defence_crush"`
	DefenceMagic   *int `json:"defence_magic" yaml:"defence_magic"`
	DefenceRanged  *int `json:"defence_ranged" yaml:"defence_ranged"`
	AttackAccuracy *int `json:"attack_accuracy" yaml:"attack_accuracy"`
	MeleeStrength  *int `json:"melee_strength" yaml:"melee_strength"`
	RangedStrength *int `json:"ranged_strength" yaml:"ranged_strength"`
	MagicDamage    *int `json:"magic_damage" yaml:"magic_damage"`
}

// RecordID returns the monster id.
func (m *Monster) RecordID() *int { return m.ID }

// Validate checks that the monster has a usable id.
func (m *Monster) Validate() error {
	return validate(m.ID)
}
