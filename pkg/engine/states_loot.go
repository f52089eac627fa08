package engine

import (
	"errors"
	"fmt"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

const (
	transmuteArcane = 1
	transmuteTime   = 1
)

// awardLoot gives the party one item from the floor's deck of kind. The
// LootAwarded flag keeps a re-rendered loot screen from paying out twice.
func (t *turn) awardLoot(kind content.ItemKind) (*content.Item, error) {
	held := t.s.Equipment
	if kind == content.KindConsumable {
		held = t.s.Consumables
	}
	if t.s.LootAwarded {
		if len(held) == 0 {
			return nil, errors.New("awarded loot is missing from the inventory")
		}
		return held[len(held)-1], nil
	}

	item, err := t.s.DrawItem(kind, t.content, t.rng)
	if err != nil {
		return nil, err
	}
	t.s.AddItem(item)
	t.s.LootAwarded = true
	return item, nil
}

func (t *turn) renderLoot(item *content.Item, blurbKey string, overfull bool, fullKey string, held []*content.Item) *Response {
	text := t.msg("loot.message") + "\n\n" +
		item.FullLengthDescription(t.rng) + "\n\n" +
		t.msg(blurbKey) + "\n" +
		item.Benefits()
	if overfull {
		text += "\n\n" + t.msg(fullKey)
		return &Response{Text: text, Options: lines(state.ListItems(held, false))}
	}
	return t.respond(text, "global.confirm")
}

func enterLootConsumable(t *turn) (*Response, error) {
	item, err := t.awardLoot(content.KindConsumable)
	if err != nil {
		return nil, err
	}
	return t.renderLoot(item, "loot.consumable_blurb", t.s.ConsumablesOverfull(), "loot.consumables_full", t.s.Consumables), nil
}

// updateLootConsumable makes an overfull party use one consumable on the spot.
func updateLootConsumable(t *turn, input string) (state.StateID, error) {
	if t.s.ConsumablesOverfull() {
		index, ok := parseIndex(input)
		if !ok || index < 0 || index > state.InventoryLimit {
			return state.LootConsumable, nil
		}
		if _, ok := t.s.UseConsumable(index); !ok {
			return state.LootConsumable, nil
		}
	}
	t.s.LootAwarded = false
	return state.Event, nil
}

func enterLootEquipment(t *turn) (*Response, error) {
	item, err := t.awardLoot(content.KindEquipment)
	if err != nil {
		return nil, err
	}
	return t.renderLoot(item, "loot.equipment_blurb", t.s.EquipmentOverfull(), "loot.equipment_full", t.s.Equipment), nil
}

// updateLootEquipment makes an overfull party discard one piece of equipment.
func updateLootEquipment(t *turn, input string) (state.StateID, error) {
	if t.s.EquipmentOverfull() {
		index, ok := parseIndex(input)
		if !ok || index < 0 || index > state.InventoryLimit {
			return state.LootEquipment, nil
		}
		if !t.s.DiscardEquipment(index) {
			return state.LootEquipment, nil
		}
	}
	t.s.CalculateResources()
	t.s.LootAwarded = false
	return state.Event, nil
}

func enterLootLevelUp(t *turn) (*Response, error) {
	if !t.s.LootAwarded {
		t.s.Party.Level++
		t.s.CalculateResources()
		t.s.LootAwarded = true
		if err := t.s.NextFloor(t.content, t.rng); err != nil {
			return nil, err
		}
	}
	text := t.msg("levelup.opening") + "\n\n" + t.s.StatusReport(t.msgs) + "\n\n" + t.msg("levelup.closing")
	return t.respond(text, "global.confirm"), nil
}

func updateLootLevelUp(t *turn, _ string) (state.StateID, error) {
	t.s.LootAwarded = false
	return state.Event, nil
}

func enterUseConsumable(t *turn) (*Response, error) {
	options := append(lines(state.ListItems(t.s.Consumables, false)), t.msg("global.cancel"))
	return &Response{Text: t.msg("use_consumable.message"), Options: options}, nil
}

// updateUseConsumable always goes back to where the party came from; input
// that names no consumable counts as cancelling.
func updateUseConsumable(t *turn, input string) (state.StateID, error) {
	if index, ok := parseIndex(input); ok {
		t.s.UseConsumable(index)
	}
	next := t.s.ReturnState
	if next == "" {
		next = state.Action
	}
	t.s.ReturnState = ""
	return next, nil
}

func enterTransmute(t *turn) (*Response, error) {
	text := t.instructions(state.Transmute, "transmute.instructions") + t.msg("transmute.message")
	options := append(lines(state.ListItems(t.s.Items(), true)), t.msg("global.cancel"))
	return &Response{Text: text, Options: options}, nil
}

func updateTransmute(t *turn, input string) (state.StateID, error) {
	if t.is(input, "global.cancel") || t.s.ResourceCount(content.Arcane) < transmuteArcane {
		return state.Action, nil
	}
	index, ok := parseIndex(input)
	if !ok || index < 0 || index >= len(t.s.Items()) {
		return state.Transmute, nil
	}

	if _, err := t.s.Transmute(index, t.content, t.rng); err != nil {
		return state.Action, fmt.Errorf("failed to transmute: %w", err)
	}
	t.s.SpendResource(content.Arcane, transmuteArcane)
	t.s.SpendResource(content.Time, transmuteTime)
	if t.s.OutOfTime() {
		return state.OutOfTime, nil
	}
	return state.TransmuteResult, nil
}

func enterTransmuteResult(t *turn) (*Response, error) {
	result := t.s.TransmuteResult
	if result == nil {
		return t.respond(t.msg("transmute.result"), "global.confirm"), nil
	}
	blurb := "loot.equipment_blurb"
	if result.Kind == content.KindConsumable {
		blurb = "loot.consumable_blurb"
	}
	text := t.msg("transmute.result") + "\n\n" +
		result.FullLengthDescription(t.rng) + "\n\n" +
		t.msg(blurb) + "\n" +
		result.Benefits()
	return t.respond(text, "global.confirm"), nil
}

func updateTransmuteResult(t *turn, _ string) (state.StateID, error) {
	t.s.TransmuteResult = nil
	return state.Action, nil
}
