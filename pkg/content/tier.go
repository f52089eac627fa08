package content

import "slices"

// Tier is the content pool for one dungeon floor.
type Tier struct {
	Number      int         `yaml:"-" json:"number"`
	Events      []*Obstacle `yaml:"events" json:"events"`
	Monsters    []*Obstacle `yaml:"monsters" json:"monsters"`
	Equipment   []*Item     `yaml:"equipment" json:"equipment"`
	Consumables []*Item     `yaml:"consumables" json:"consumables"`
	Boss        *Obstacle   `yaml:"boss" json:"boss"`
}

// Items returns the tier's pool for the given item kind.
func (t *Tier) Items(kind ItemKind) []*Item {
	if kind == KindConsumable {
		return t.Consumables
	}
	return t.Equipment
}

// finalize stamps tier numbers and kinds onto everything authored in t.
func (t *Tier) finalize(number int) {
	t.Number = number
	t.Events = slices.DeleteFunc(t.Events, func(o *Obstacle) bool { return o == nil })
	t.Monsters = slices.DeleteFunc(t.Monsters, func(o *Obstacle) bool { return o == nil })
	t.Equipment = slices.DeleteFunc(t.Equipment, func(i *Item) bool { return i == nil })
	t.Consumables = slices.DeleteFunc(t.Consumables, func(i *Item) bool { return i == nil })
	for _, e := range t.Events {
		e.Tier = number
		e.Kind = KindEvent
	}
	for _, m := range t.Monsters {
		m.Tier = number
		m.Kind = KindMonster
	}
	if t.Boss != nil {
		t.Boss.Tier = number
		t.Boss.Kind = KindMonster
	}
	for _, i := range t.Equipment {
		i.Tier = number
		i.Kind = KindEquipment
	}
	for _, i := range t.Consumables {
		i.Tier = number
		i.Kind = KindConsumable
	}
}
