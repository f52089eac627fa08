package content

import (
	"fmt"
	"strings"
)

// ObstacleKind distinguishes events from monsters.
type ObstacleKind string

const (
	KindEvent   ObstacleKind = "EVENT"
	KindMonster ObstacleKind = "MONSTER"
)

// DiscountType is the category of obstacle a hero discount applies to.
type DiscountType string

const (
	EventDiscount   DiscountType = "EVENT"
	MonsterDiscount DiscountType = "MONSTER"
)

// Label is the player-facing discount category.
func (d DiscountType) Label() string {
	switch d {
	case EventDiscount:
		return "Events"
	case MonsterDiscount:
		return "Monsters"
	default:
		return string(d)
	}
}

// LootType decides what happens after a monster is defeated.
type LootType string

const (
	LootEquipment  LootType = "EQUIPMENT"
	LootConsumable LootType = "CONSUMABLE"
	LootLevelUp    LootType = "LEVELUP"
	LootWin        LootType = "WIN"
)

// Valid reports whether l is a known loot type.
func (l LootType) Valid() bool {
	switch l {
	case LootEquipment, LootConsumable, LootLevelUp, LootWin:
		return true
	}
	return false
}

// Obstacle is an event or monster standing in the party's way.
type Obstacle struct {
	ContentObject `yaml:",inline"`
	Kind          ObstacleKind `yaml:"-" json:"kind"`
	Loot          LootType     `yaml:"loot,omitempty" json:"loot,omitempty"` // monsters only
}

// DiscountCategory returns which hero discounts apply to this obstacle.
func (o *Obstacle) DiscountCategory() DiscountType {
	if o.Kind == KindMonster {
		return MonsterDiscount
	}
	return EventDiscount
}

func (o Obstacle) String() string {
	if o.Kind == KindMonster {
		return "Monster: " + o.Name
	}
	return "Event: " + o.Name
}

// Spender is the party-side view needed to resolve an obstacle.
type Spender interface {
	ResourceCount(r ResourceType) int
	Discount(category DiscountType, r ResourceType) int
}

// EffectiveCost applies a discount to a base cost. Discounts never bring a
// cost below 1.
func EffectiveCost(base, discount int) int {
	return max(1, base-discount)
}

// Cost returns the discounted cost of overcoming o with r, and whether r can
// be used against o at all.
func (o *Obstacle) Cost(r ResourceType, s Spender) (int, bool) {
	base := o.Resources.Amount(r)
	if base == 0 {
		return 0, false
	}
	return EffectiveCost(base, s.Discount(o.DiscountCategory(), r)), true
}

// CanDefeat reports whether the spender can overcome o using r right now.
func (o *Obstacle) CanDefeat(r ResourceType, s Spender) bool {
	cost, ok := o.Cost(r, s)
	if !ok {
		return false
	}
	return r.CanAlwaysSpend() || cost <= s.ResourceCount(r)
}

// UsableResources lists, in declaration order, the resources that can defeat
// o right now.
func (o *Obstacle) UsableResources(s Spender) []ResourceType {
	var usable []ResourceType
	for _, r := range AllResources {
		if o.CanDefeat(r, s) {
			usable = append(usable, r)
		}
	}
	return usable
}

// CostListing renders one line per applicable resource: the discounted cost,
// a "*" when a discount applies, the resource name and a random flavor text.
func (o *Obstacle) CostListing(s Spender, rng Rand) string {
	var b strings.Builder
	for _, r := range AllResources {
		value := o.Resources[r]
		if value.Value == 0 {
			continue
		}
		discount := s.Discount(o.DiscountCategory(), r)
		marker := ""
		if discount > 0 {
			marker = "*"
		}
		fmt.Fprintf(&b, "[%d%s %s] %s\n", EffectiveCost(value.Value, discount), marker, r.Name(), value.RandomText(rng))
	}
	return b.String()
}
