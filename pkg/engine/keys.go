package engine

// MessageKeys lists every static message the engine asks for. Catalogs
// missing any of these still work but show the bare key to players.
var MessageKeys = []string{
	"opening.text",
	"opening.instructions",
	"opening.new_game",
	"opening.advanced_start",
	"global.confirm",
	"global.yes",
	"global.no",
	"global.cancel",
	"global.use_consumable",
	"global.restart",
	"instructions.text",
	"select_hero.text",
	"hero_detail.select",
	"hero_detail.cancel",
	"enter_dungeon.blurb",
	"enter_dungeon.start",
	"event.instructions",
	"monster.instructions",
	"action.instructions",
	"ready_for_boss.message",
	"loot.message",
	"loot.consumable_blurb",
	"loot.equipment_blurb",
	"loot.consumables_full",
	"loot.equipment_full",
	"levelup.opening",
	"levelup.closing",
	"use_consumable.message",
	"transmute.instructions",
	"transmute.message",
	"transmute.result",
	"scout.instructions",
	"scout.message",
	"scout.question",
	"secret_door.instructions",
	"secret_door.message",
	"secret_door.question",
	"out_of_health.continue",
	"game_over.restart",
	"victory.opening",
	"victory.heroes",
	"victory.time",
	"victory.thanks",
	"status.kills",
	"status.consumables",
	"status.equipment",
	"error.update",
	"error.enter_state",
}

// DynamicCategories lists the random message categories the engine draws
// from.
var DynamicCategories = []string{
	"restart",
	"enter_dungeon",
	"short_rest",
	"long_rest",
	"cure",
	"mass_cure",
	"out_of_time",
	"out_of_health",
}

func init() {
	for _, a := range actions {
		MessageKeys = append(MessageKeys, a.key, instructionsKey(a.key))
	}
}
