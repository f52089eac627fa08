package engine

import (
	"fmt"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

const (
	cureHealth      = 1
	massCureHealth  = 4
	retreatTimeCost = 20
)

func enterShortRest(t *turn) (*Response, error) {
	t.s.RefillResources()
	return t.respond(t.random("short_rest"), "global.confirm"), nil
}

func enterLongRest(t *turn) (*Response, error) {
	t.s.RefillAll()
	return t.respond(t.random("long_rest"), "global.confirm"), nil
}

func enterCure(t *turn) (*Response, error) {
	t.s.GainResource(content.Health, cureHealth, false)
	return t.respond(t.random("cure"), "global.confirm"), nil
}

func enterMassCure(t *turn) (*Response, error) {
	t.s.GainResource(content.Health, massCureHealth, false)
	return t.respond(t.random("mass_cure"), "global.confirm"), nil
}

// renderPreview shows an upcoming obstacle's name and costs without its
// description, and asks whether to send it to the bottom of the deck.
func (t *turn) renderPreview(id state.StateID, prefix string, o *content.Obstacle) *Response {
	var b strings.Builder
	b.WriteString(t.instructions(id, prefix+".instructions"))
	fmt.Fprintf(&b, "%s\n\n%s\n\n%s\n\n%s",
		t.msg(prefix+".message"),
		o.Name,
		strings.TrimSuffix(o.CostListing(t.s, t.rng), "\n"),
		t.msg(prefix+".question"))
	return t.respond(b.String(), "global.yes", "global.no")
}

func enterScout(t *turn) (*Response, error) {
	event, err := t.s.UpcomingEvent(t.content, t.rng)
	if err != nil {
		return nil, err
	}
	return t.renderPreview(state.Scout, "scout", event), nil
}

func updateScout(t *turn, input string) (state.StateID, error) {
	switch {
	case t.is(input, "global.yes"):
		t.s.RedrawEvent()
		return state.Action, nil
	case t.is(input, "global.no"):
		return state.Action, nil
	}
	return state.Scout, nil
}

func enterSecretDoor(t *turn) (*Response, error) {
	monster, err := t.s.UpcomingMonster(t.content)
	if err != nil {
		return nil, err
	}
	return t.renderPreview(state.SecretDoor, "secret_door", monster), nil
}

func updateSecretDoor(t *turn, input string) (state.StateID, error) {
	switch {
	case t.is(input, "global.yes"):
		t.s.RedrawMonster()
		return state.Action, nil
	case t.is(input, "global.no"):
		return state.Action, nil
	}
	return state.SecretDoor, nil
}

// enterOutOfHealth costs the party Time to recover. If that runs the clock
// out the session moves straight to OutOfTime.
func enterOutOfHealth(t *turn) (*Response, error) {
	text := t.random("out_of_health")
	t.s.SpendResource(content.Time, retreatTimeCost)
	if t.s.OutOfTime() {
		t.s.State = state.OutOfTime
		return t.respond(text+"\n\n"+t.random("out_of_time"), "game_over.restart"), nil
	}
	t.s.RefillAll()
	return t.respond(text, "out_of_health.continue"), nil
}

func enterOutOfTime(t *turn) (*Response, error) {
	return t.respond(t.random("out_of_time"), "game_over.restart"), nil
}

func enterVictory(t *turn) (*Response, error) {
	text := fmt.Sprintf("%s\n\n%s%s\n%s%d\n\n%s",
		t.msg("victory.opening"),
		t.msg("victory.heroes"), t.s.ListHeroes(),
		t.msg("victory.time"), t.s.ResourceCount(content.Time),
		t.msg("victory.thanks"))
	return t.respond(text, "global.confirm"), nil
}
