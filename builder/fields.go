package builder

import (
	"github.com/tsawler/infobox/clean"
	"github.com/tsawler/infobox/model"
	"github.com/tsawler/infobox/resolver"
	"github.com/tsawler/infobox/wikitext"
)

// field maps one infobox key onto a record of type R.
type field[R any] struct {
	key    string
	assign func(r *R, raw string, ok bool)
}

func intField[R any](key string, dst func(*R) **int) field[R] {
	return field[R]{key: key, assign: func(r *R, raw string, ok bool) {
		if ok {
			*dst(r) = clean.Int(raw)
		}
	}}
}

func textField[R any](key string, dst func(*R) **string) field[R] {
	return field[R]{key: key, assign: func(r *R, raw string, ok bool) {
		if ok {
			s := clean.Text(raw)
			*dst(r) = &s
		}
	}}
}

func dateField[R any](key string, dst func(*R) **string) field[R] {
	return field[R]{key: key, assign: func(r *R, raw string, ok bool) {
		if ok {
			*dst(r) = clean.Date(raw)
		}
	}}
}

func boolField[R any](key string, dst func(*R) *bool) field[R] {
	return field[R]{key: key, assign: func(r *R, raw string, ok bool) {
		*dst(r) = ok && clean.BoolString(raw)
	}}
}

// fill extracts every field from t and assigns it into r.
func fill[R any](r *R, fields []field[R], t *wikitext.Template, info resolver.VersionInfo) {
	for _, f := range fields {
		raw, ok := resolver.Extract(t, f.key, info)
		f.assign(r, raw, ok)
	}
}

// Infobox keys are the ones used by the Old School RuneScape wiki.

var monsterFields = []field[model.Monster]{
	intField("id", func(m *model.Monster) **int { return &m.ID }),
	textField("name", func(m *model.Monster) **string { return &m.Name }),
	boolField("members", func(m *model.Monster) *bool { return &m.Members }),
	dateField("release", func(m *model.Monster) **string { return &m.ReleaseDate }),
	intField("combat", func(m *model.Monster) **int { return &m.CombatLevel }),
	intField("hitpoints", func(m *model.Monster) **int { return &m.Hitpoints }),
	intField("max hit", func(m *model.Monster) **int { return &m.MaxHit }),
	textField("attack style", func(m *model.Monster) **string { return &m.AttackType }),
	intField("attack speed", func(m *model.Monster) **int { return &m.AttackSpeed }),
	boolField("aggressive", func(m *model.Monster) *bool { return &m.Aggressive }),
	boolField("poisonous", func(m *model.Monster) *bool { return &m.Poisonous }),
	textField("immunepoison", func(m *model.Monster) **string { return &m.ImmunePoison }),
	textField("immunevenom", func(m *model.Monster) **string { return &m.ImmuneVenom }),
	textField("weakness", func(m *model.Monster) **string { return &m.Weakness }),
	intField("slaylvl", func(m *model.Monster) **int { return &m.SlayerLevel }),
	intField("slayxp", func(m *model.Monster) **int { return &m.SlayerXP }),
	textField("examine", func(m *model.Monster) **string { return &m.Examine }),

	intField("att", func(m *model.Monster) **int { return &m.Stats.AttackLevel }),
	intField("str", func(m *model.Monster) **int { return &m.Stats.StrengthLevel }),
	intField("def", func(m *model.Monster) **int { return &m.Stats.DefenceLevel }),
	intField("mage", func(m *model.Monster) **int { return &m.Stats.MagicLevel }),
	intField("range", func(m *model.Monster) **int { return &m.Stats.RangedLevel }),
	intField("astab", func(m *model.Monster) **int { return &m.Stats.AttackStab }),
	intField("aslash", func(m *model.Monster) **int { return &m.Stats.AttackSlash }),
	intField("acrush", func(m *model.Monster) **int { return &m.Stats.AttackCrush }),
	intField("amagic", func(m *model.Monster) **int { return &m.Stats.AttackMagic }),
	intField("arange", func(m *model.Monster) **int { return &m.Stats.AttackRanged }),
	intField("dstab", func(m *model.Monster) **int { return &m.Stats.DefenceStab }),
	intField("dslash", func(m *model.Monster) **int { return &m.Stats.DefenceSlash }),
	intField("dcrush", func(m *model.Monster) **int { return &m.Stats.DefenceCrush }),
	intField("dmagic", func(m *model.Monster) **int { return &m.Stats.DefenceMagic }),
	intField("drange", func(m *model.Monster) **int { return &m.Stats.DefenceRanged }),
	intField("attbns", func(m *model.Monster) **int { return &m.Stats.AttackAccuracy }),
	intField("strbns", func(m *model.Monster) **int { return &m.Stats.MeleeStrength }),
	intField("rngbns", func(m *model.Monster) **int { return &m.Stats.RangedStrength }),
	intField("mbns", func(m *model.Monster) **int { return &m.Stats.MagicDamage }),
}

var itemFields = []field[model.Item]{
	intField("id", func(i *model.Item) **int { return &i.ID }),
	textField("name", func(i *model.Item) **string { return &i.Name }),
	boolField("members", func(i *model.Item) *bool { return &i.Members }),
	dateField("release", func(i *model.Item) **string { return &i.ReleaseDate }),
	boolField("quest", func(i *model.Item) *bool { return &i.QuestItem }),
	boolField("tradeable", func(i *model.Item) *bool { return &i.Tradeable }),
	boolField("equipable", func(i *model.Item) *bool { return &i.Equipable }),
	boolField("stackable", func(i *model.Item) *bool { return &i.Stackable }),
	boolField("noteable", func(i *model.Item) *bool { return &i.Noteable }),
	intField("value", func(i *model.Item) **int { return &i.Cost }),
	textField("weight", func(i *model.Item) **string { return &i.Weight }),
	textField("examine", func(i *model.Item) **string { return &i.Examine }),
}

var bonusFields = []field[model.EquipmentStats]{
	intField("astab", func(s *model.EquipmentStats) **int { return &s.AttackStab }),
	intField("aslash", func(s *model.EquipmentStats) **int { return &s.AttackSlash }),
	intField("acrush", func(s *model.EquipmentStats) **int { return &s.AttackCrush }),
	intField("amagic", func(s *model.EquipmentStats) **int { return &s.AttackMagic }),
	intField("arange", func(s *model.EquipmentStats) **int { return &s.AttackRanged }),
	intField("dstab", func(s *model.EquipmentStats) **int { return &s.DefenceStab }),
	intField("dslash", func(s *model.EquipmentStats) **int { return &s.DefenceSlash }),
	intField("dcrush", func(s *model.EquipmentStats) **int { return &s.DefenceCrush }),
	intField("dmagic", func(s *model.EquipmentStats) **int { return &s.DefenceMagic }),
	intField("drange", func(s *model.EquipmentStats) **int { return &s.DefenceRanged }),
	intField("str", func(s *model.EquipmentStats) **int { return &s.MeleeStrength }),
	intField("rstr", func(s *model.EquipmentStats) **int { return &s.RangedStrength }),
	intField("mdmg", func(s *model.EquipmentStats) **int { return &s.MagicDamage }),
	intField("prayer", func(s *model.EquipmentStats) **int { return &s.Prayer }),
	textField("slot", func(s *model.EquipmentStats) **string { return &s.Slot }),
	intField("speed", func(s *model.EquipmentStats) **int { return &s.AttackSpeed }),
}
