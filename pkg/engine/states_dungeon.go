package engine

import (
	"fmt"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

// renderObstacle shows an obstacle with its costs and the party's status.
// The options are the resources that can overcome it, plus consumables when
// the party has any.
func (t *turn) renderObstacle(id state.StateID, instructionsKey string, o *content.Obstacle) *Response {
	var b strings.Builder
	b.WriteString(t.instructions(id, instructionsKey))
	b.WriteString(o.FullLengthDescription(t.rng))
	b.WriteString("\n\n")
	b.WriteString(o.CostListing(t.s, t.rng))
	b.WriteString("\n")
	b.WriteString(t.s.StatusReport(t.msgs))

	var options []string
	for _, r := range o.UsableResources(t.s) {
		options = append(options, r.Name())
	}
	if len(t.s.Consumables) > 0 {
		options = append(options, t.msg("global.use_consumable"))
	}
	return &Response{Text: b.String(), Options: options}
}

// spendOn pays for overcoming o with the resource named by input. It reports
// false when input names no resource that can be used against o.
func (t *turn) spendOn(o *content.Obstacle, input string) bool {
	r, ok := content.ParseResourceType(input)
	if !ok || !o.CanDefeat(r, t.s) {
		return false
	}
	cost, _ := o.Cost(r, t.s)
	t.s.SpendResource(r, cost)
	return true
}

// exhausted returns the state forced by running out of Time or Health.
func (t *turn) exhausted() (state.StateID, bool) {
	if t.s.OutOfTime() {
		return state.OutOfTime, true
	}
	if t.s.OutOfHealth() {
		return state.OutOfHealth, true
	}
	return "", false
}

func enterEvent(t *turn) (*Response, error) {
	event, err := t.s.UpcomingEvent(t.content, t.rng)
	if err != nil {
		return nil, err
	}
	return t.renderObstacle(state.Event, "event.instructions", event), nil
}

func updateEvent(t *turn, input string) (state.StateID, error) {
	if t.is(input, "global.use_consumable") && len(t.s.Consumables) > 0 {
		t.s.ReturnState = state.Event
		return state.UseConsumable, nil
	}

	event, err := t.s.UpcomingEvent(t.content, t.rng)
	if err != nil {
		return state.Event, err
	}
	if !t.spendOn(event, input) {
		return state.Event, nil
	}
	if next, ok := t.exhausted(); ok {
		return next, nil
	}

	t.s.NextEvent()
	if t.s.CanFightBoss() {
		return state.ReadyForBoss, nil
	}
	return state.Action, nil
}

func enterMonster(t *turn) (*Response, error) {
	monster, err := t.s.UpcomingMonster(t.content)
	if err != nil {
		return nil, err
	}
	return t.renderObstacle(state.Monster, "monster.instructions", monster), nil
}

var lootStates = map[content.LootType]state.StateID{
	content.LootConsumable: state.LootConsumable,
	content.LootEquipment:  state.LootEquipment,
	content.LootLevelUp:    state.LootLevelUp,
	content.LootWin:        state.Victory,
}

func updateMonster(t *turn, input string) (state.StateID, error) {
	if t.is(input, "global.use_consumable") && len(t.s.Consumables) > 0 {
		t.s.ReturnState = state.Monster
		return state.UseConsumable, nil
	}

	monster, err := t.s.UpcomingMonster(t.content)
	if err != nil {
		return state.Monster, err
	}
	if !t.spendOn(monster, input) {
		return state.Monster, nil
	}
	if next, ok := t.exhausted(); ok {
		t.s.FightingBoss = false
		return next, nil
	}

	t.s.DefeatMonster()
	next, ok := lootStates[monster.Loot]
	if !ok {
		return state.Event, fmt.Errorf("%w %q on %s", ErrUnknownLoot, monster.Loot, monster.ID)
	}
	return next, nil
}

// action is one entry of the Action menu.
type action struct {
	key   string // option text message key
	next  state.StateID
	costs []cost

	// allowed gates the action beyond being able to pay its costs.
	allowed func(s *state.Session) bool
	// apply runs after the costs are paid.
	apply func(s *state.Session)
}

type cost struct {
	resource content.ResourceType
	amount   int
}

func monstersLeft(s *state.Session) bool { return !s.OutOfMonsters() }

// actions lists the Action menu in display order.
var actions = []action{
	{
		key:     "action.fight",
		next:    state.Monster,
		costs:   []cost{{content.Time, 3}},
		allowed: monstersLeft,
	},
	{
		key:     "action.short_rest",
		next:    state.ShortRest,
		costs:   []cost{{content.Time, 5}},
		allowed: (*state.Session).CanShortRest,
	},
	{
		key:     "action.long_rest",
		next:    state.LongRest,
		costs:   []cost{{content.Time, 15}},
		allowed: (*state.Session).CanExtendedRest,
	},
	{
		key:     "action.charge",
		next:    state.Monster,
		costs:   []cost{{content.Physical, 1}, {content.Time, 2}},
		allowed: monstersLeft,
	},
	{
		// Transmute is paid for once an item is picked.
		key:     "action.transmute",
		next:    state.Transmute,
		allowed: func(s *state.Session) bool { return s.ResourceCount(content.Arcane) >= transmuteArcane && s.HasItems() },
	},
	{
		key:   "action.cure",
		next:  state.Cure,
		costs: []cost{{content.Divine, 1}, {content.Time, 1}},
	},
	{
		key:   "action.mass_cure",
		next:  state.MassCure,
		costs: []cost{{content.Divine, 3}, {content.Time, 1}},
	},
	{
		key:   "action.scout",
		next:  state.Scout,
		costs: []cost{{content.Stealth, 1}, {content.Time, 1}},
	},
	{
		key:     "action.secret_door",
		next:    state.SecretDoor,
		costs:   []cost{{content.Mechanical, 1}, {content.Time, 1}},
		allowed: monstersLeft,
	},
	{
		key:     "action.use_consumable",
		next:    state.UseConsumable,
		allowed: func(s *state.Session) bool { return len(s.Consumables) > 0 },
		apply:   func(s *state.Session) { s.ReturnState = state.Action },
	},
	{
		key:     "action.boss",
		next:    state.Monster,
		costs:   []cost{{content.Time, 3}},
		allowed: (*state.Session).CanFightBoss,
		apply:   func(s *state.Session) { s.FightingBoss = true },
	},
	{
		key:     "action.boss_charge",
		next:    state.Monster,
		costs:   []cost{{content.Physical, 1}, {content.Time, 2}},
		allowed: (*state.Session).CanFightBoss,
		apply:   func(s *state.Session) { s.FightingBoss = true },
	},
	{
		key:   "action.repeat_instructions",
		next:  state.Action,
		apply: func(s *state.Session) { s.ForgetInstructions(state.Action) },
	},
}

// available reports whether the party may take a right now. Time can always
// be spent; every other cost needs current >= cost.
func (a *action) available(s *state.Session) bool {
	if a.allowed != nil && !a.allowed(s) {
		return false
	}
	for _, c := range a.costs {
		if !c.resource.CanAlwaysSpend() && s.ResourceCount(c.resource) < c.amount {
			return false
		}
	}
	return true
}

func enterAction(t *turn) (*Response, error) {
	var parts []string
	if t.s.SeeInstructions(state.Action) {
		help := make([]string, 0, len(actions))
		for _, a := range actions {
			help = append(help, t.msg(instructionsKey(a.key)))
		}
		parts = append(parts, t.msg("action.instructions"), strings.Join(help, "\n"))
	}
	parts = append(parts, t.s.StatusReport(t.msgs))

	var options []string
	for i := range actions {
		if actions[i].available(t.s) {
			options = append(options, t.msg(actions[i].key))
		}
	}
	return &Response{Text: strings.Join(parts, "\n\n"), Options: options}, nil
}

// instructionsKey maps "action.fight" to "instructions.fight_text".
func instructionsKey(actionKey string) string {
	return "instructions." + strings.TrimPrefix(actionKey, "action.") + "_text"
}

func updateAction(t *turn, input string) (state.StateID, error) {
	next := state.Action
	for i := range actions {
		a := &actions[i]
		if !t.is(input, a.key) || !a.available(t.s) {
			continue
		}
		for _, c := range a.costs {
			t.s.SpendResource(c.resource, c.amount)
		}
		if a.apply != nil {
			a.apply(t.s)
		}
		next = a.next
		break
	}
	if t.s.OutOfTime() {
		return state.OutOfTime, nil
	}
	return next, nil
}
