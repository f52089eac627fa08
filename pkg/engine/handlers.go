package engine

import "github.com/Codelizard/HeroesOfCordan/pkg/state"

// stateHandler is one state of the game. enter renders the state for the
// player; update consumes the player's reply and names the next state.
// Input a state cannot use leaves the session where it is, so the state is
// rendered again.
type stateHandler struct {
	enter  func(t *turn) (*Response, error)
	update func(t *turn, input string) (state.StateID, error)
}

var handlers = map[state.StateID]stateHandler{
	state.Title:           {enter: enterTitle, update: updateTitle},
	state.Restarting:      {enter: enterRestarting, update: goTo(state.Title)},
	state.Instructions:    {enter: enterInstructions, update: updateInstructions},
	state.SelectHeroes:    {enter: enterSelectHeroes, update: updateSelectHeroes},
	state.HeroDetail:      {enter: enterHeroDetail, update: updateHeroDetail},
	state.EnterDungeon:    {enter: enterEnterDungeon, update: updateEnterDungeon},
	state.Event:           {enter: enterEvent, update: updateEvent},
	state.Action:          {enter: enterAction, update: updateAction},
	state.Monster:         {enter: enterMonster, update: updateMonster},
	state.ReadyForBoss:    {enter: confirm("ready_for_boss.message"), update: goTo(state.Action)},
	state.LootConsumable:  {enter: enterLootConsumable, update: updateLootConsumable},
	state.LootEquipment:   {enter: enterLootEquipment, update: updateLootEquipment},
	state.LootLevelUp:     {enter: enterLootLevelUp, update: updateLootLevelUp},
	state.UseConsumable:   {enter: enterUseConsumable, update: updateUseConsumable},
	state.ShortRest:       {enter: enterShortRest, update: goTo(state.Action)},
	state.LongRest:        {enter: enterLongRest, update: goTo(state.Action)},
	state.Transmute:       {enter: enterTransmute, update: updateTransmute},
	state.TransmuteResult: {enter: enterTransmuteResult, update: updateTransmuteResult},
	state.Cure:            {enter: enterCure, update: goTo(state.Action)},
	state.MassCure:        {enter: enterMassCure, update: goTo(state.Action)},
	state.Scout:           {enter: enterScout, update: updateScout},
	state.SecretDoor:      {enter: enterSecretDoor, update: updateSecretDoor},
	state.OutOfHealth:     {enter: enterOutOfHealth, update: goTo(state.Event)},
	state.OutOfTime:       {enter: enterOutOfTime, update: goTo(state.Title)},
	state.Victory:         {enter: enterVictory, update: goTo(state.Title)},
}

// goTo is an update that accepts any input and moves to next.
func goTo(next state.StateID) func(*turn, string) (state.StateID, error) {
	return func(*turn, string) (state.StateID, error) {
		return next, nil
	}
}

// confirm is an enter that shows a static message with a single
// acknowledgement option.
func confirm(key string) func(*turn) (*Response, error) {
	return func(t *turn) (*Response, error) {
		return t.respond(t.msg(key), "global.confirm"), nil
	}
}
