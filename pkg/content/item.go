package content

import (
	"fmt"
	"strings"
)

// ItemKind distinguishes permanent equipment from one-shot consumables.
type ItemKind string

const (
	KindEquipment  ItemKind = "EQUIPMENT"  // adds to resource maximums while held
	KindConsumable ItemKind = "CONSUMABLE" // adds to current resources once, then is gone
)

// Label is the player-facing item kind.
func (k ItemKind) Label() string {
	switch k {
	case KindEquipment:
		return "Equipment"
	case KindConsumable:
		return "Consumable"
	default:
		return string(k)
	}
}

// Item is a piece of loot the party can carry.
type Item struct {
	ContentObject `yaml:",inline"`
	Kind          ItemKind `yaml:"-" json:"kind"` // assigned from the tier list the item was authored in
}

// Benefits lists every nonzero resource effect as "+N Kind".
func (i *Item) Benefits() string {
	var parts []string
	for _, r := range AllResources {
		if v := i.Resources.Amount(r); v != 0 {
			parts = append(parts, fmt.Sprintf("+%d %s", v, r.Name()))
		}
	}
	return strings.Join(parts, ", ")
}

func (i Item) String() string {
	return i.Kind.Label() + ": " + i.Name
}
