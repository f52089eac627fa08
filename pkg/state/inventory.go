package state

import (
	"fmt"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/party"
)

// InventoryLimit is how many items of one kind the party may carry without
// being forced to discard.
const InventoryLimit = party.FullPartySize + 1

// AddItem puts item in the matching inventory list. Equipment changes
// resource maximums, so they are recomputed.
func (s *Session) AddItem(item *content.Item) {
	if item.Kind == content.KindConsumable {
		s.Consumables = append(s.Consumables, item)
		return
	}
	s.Equipment = append(s.Equipment, item)
	s.CalculateResources()
}

func (s *Session) EquipmentOverfull() bool {
	return len(s.Equipment) > InventoryLimit
}

func (s *Session) ConsumablesOverfull() bool {
	return len(s.Consumables) > InventoryLimit
}

// HasItems reports whether the party carries anything at all.
func (s *Session) HasItems() bool {
	return len(s.Equipment) > 0 || len(s.Consumables) > 0
}

// Items returns equipment followed by consumables.
func (s *Session) Items() []*content.Item {
	items := make([]*content.Item, 0, len(s.Equipment)+len(s.Consumables))
	items = append(items, s.Equipment...)
	return append(items, s.Consumables...)
}

func remove(items []*content.Item, index int) ([]*content.Item, *content.Item, bool) {
	if index < 0 || index >= len(items) {
		return items, nil, false
	}
	item := items[index]
	return append(items[:index:index], items[index+1:]...), item, true
}

// DiscardEquipment drops the equipment at index and recomputes maximums.
func (s *Session) DiscardEquipment(index int) bool {
	var ok bool
	s.Equipment, _, ok = remove(s.Equipment, index)
	if ok {
		s.CalculateResources()
	}
	return ok
}

// TakeConsumable removes and returns the consumable at index.
func (s *Session) TakeConsumable(index int) (*content.Item, bool) {
	var item *content.Item
	var ok bool
	s.Consumables, item, ok = remove(s.Consumables, index)
	return item, ok
}

// UseConsumable removes the consumable at index and applies it.
func (s *Session) UseConsumable(index int) (*content.Item, bool) {
	item, ok := s.TakeConsumable(index)
	if ok {
		s.ApplyConsumable(item)
	}
	return item, ok
}

// ListItems renders items one per line as "n: Name [benefits]", numbered
// from 1. With showKind the item kind precedes the name.
func ListItems(items []*content.Item, showKind bool) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		kind := ""
		if showKind {
			kind = "(" + item.Kind.Label() + ") "
		}
		lines = append(lines, fmt.Sprintf("%d: %s%s [%s]", i+1, kind, item.Name, item.Benefits()))
	}
	return strings.Join(lines, "\n")
}

// Transmute swaps the item at index (into Items) for a random item of the
// same tier and kind. The original is only drawn again when it is the sole
// member of its pool. The replacement takes the original's place in the
// inventory.
func (s *Session) Transmute(index int, store content.Store, rng content.Rand) (*content.Item, error) {
	items := s.Items()
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("no item at position %d", index+1)
	}
	original := items[index]

	tier, err := store.Tier(original.Tier)
	if err != nil {
		return nil, fmt.Errorf("failed to transmute %s: %w", original.ID, err)
	}
	pool := tier.Items(original.Kind)
	candidates := make([]*content.Item, 0, len(pool))
	for _, item := range pool {
		if item.ID != original.ID {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("failed to transmute %s: %w", original.ID, content.ErrEmptyPool)
	}
	replacement := candidates[rng.Intn(len(candidates))]

	if index < len(s.Equipment) {
		s.Equipment[index] = replacement
		s.CalculateResources()
	} else {
		s.Consumables[index-len(s.Equipment)] = replacement
	}
	s.TransmuteResult = replacement
	return replacement, nil
}
