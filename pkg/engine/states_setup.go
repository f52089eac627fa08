package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

func enterTitle(t *turn) (*Response, error) {
	return t.respond(t.msg("opening.text"),
		"opening.instructions",
		"opening.new_game",
		"opening.advanced_start",
	), nil
}

func updateTitle(t *turn, input string) (state.StateID, error) {
	switch {
	case t.is(input, "opening.instructions"):
		t.s.Reset()
		return state.Instructions, nil
	case t.is(input, "opening.new_game"):
		t.s.Reset()
		t.quickStart()
		return state.EnterDungeon, nil
	case t.is(input, "opening.advanced_start"):
		t.s.Reset()
		return state.SelectHeroes, nil
	}
	return state.Title, nil
}

// quickStart fills the party with four random heroes.
func (t *turn) quickStart() {
	for _, h := range t.content.PickFourRandomHeroes(t.rng) {
		t.s.Party.Add(h)
	}
	t.s.CalculateResources()
}

func enterRestarting(t *turn) (*Response, error) {
	return t.respond(t.random("restart"), "global.confirm"), nil
}

func enterInstructions(t *turn) (*Response, error) {
	return t.respond(t.msg("instructions.text"), "global.confirm"), nil
}

func updateInstructions(t *turn, _ string) (state.StateID, error) {
	t.quickStart()
	return state.EnterDungeon, nil
}

func enterSelectHeroes(t *turn) (*Response, error) {
	var b strings.Builder
	b.WriteString(t.msg("select_hero.text"))
	b.WriteString("\n")

	var options []string
	for i, h := range t.content.Heroes() {
		if t.s.Party.Contains(h) {
			continue
		}
		fmt.Fprintf(&b, "\n%d: %s (%s)", i+1, h.Class, h.Description)
		options = append(options, strconv.Itoa(i+1))
	}
	return &Response{Text: b.String(), Options: options, Columns: 4}, nil
}

func updateSelectHeroes(t *turn, input string) (state.StateID, error) {
	heroes := t.content.Heroes()
	index, ok := parseIndex(input)
	if !ok || index < 0 || index >= len(heroes) || t.s.Party.Contains(heroes[index]) {
		return state.SelectHeroes, nil
	}
	t.s.HeroIndex = index
	return state.HeroDetail, nil
}

func enterHeroDetail(t *turn) (*Response, error) {
	heroes := t.content.Heroes()
	if t.s.HeroIndex < 0 || t.s.HeroIndex >= len(heroes) {
		return nil, fmt.Errorf("no hero at position %d", t.s.HeroIndex+1)
	}
	return t.respond(heroes[t.s.HeroIndex].Detail(), "hero_detail.select", "hero_detail.cancel"), nil
}

func updateHeroDetail(t *turn, input string) (state.StateID, error) {
	switch {
	case t.is(input, "hero_detail.select"):
		heroes := t.content.Heroes()
		if t.s.HeroIndex < 0 || t.s.HeroIndex >= len(heroes) {
			return state.SelectHeroes, fmt.Errorf("no hero at position %d", t.s.HeroIndex+1)
		}
		t.s.Party.Add(heroes[t.s.HeroIndex])
		if t.s.Party.IsFull() {
			t.s.CalculateResources()
			return state.EnterDungeon, nil
		}
		return state.SelectHeroes, nil
	case t.is(input, "hero_detail.cancel"):
		return state.SelectHeroes, nil
	}
	return state.HeroDetail, nil
}

func enterEnterDungeon(t *turn) (*Response, error) {
	text := t.random("enter_dungeon") + "\n\n" + t.s.ListHeroes() + "...\n" + t.msg("enter_dungeon.blurb")
	return t.respond(text, "enter_dungeon.start"), nil
}

func updateEnterDungeon(t *turn, _ string) (state.StateID, error) {
	if err := t.s.NextFloor(t.content, t.rng); err != nil {
		return state.EnterDungeon, err
	}
	return state.Event, nil
}
