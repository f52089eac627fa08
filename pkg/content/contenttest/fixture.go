// Package contenttest provides a small, valid content catalog for tests.
package contenttest

import (
	"fmt"
	"math/rand"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
)

// Rand returns a deterministic random source.
func Rand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func cost(kinds ...any) content.Resources {
	r := make(content.Resources)
	for i := 0; i+1 < len(kinds); i += 2 {
		kind := kinds[i].(content.ResourceType)
		r[kind] = content.ResourceValue{
			Value: kinds[i+1].(int),
			Texts: []string{fmt.Sprintf("Use %s.", kind.Name())},
		}
	}
	return r
}

func obstacle(id string, loot content.LootType, r content.Resources) *content.Obstacle {
	return &content.Obstacle{
		ContentObject: content.ContentObject{
			ID:           id,
			Name:         "The " + id,
			Resources:    r,
			Descriptions: []string{id + " description"},
			Flavor:       []string{id + " flavor"},
		},
		Loot: loot,
	}
}

func item(id string, r content.Resources) *content.Item {
	return &content.Item{
		ContentObject: content.ContentObject{
			ID:           id,
			Name:         "The " + id,
			Resources:    r,
			Descriptions: []string{id + " description"},
		},
	}
}

func hero(id, class string, discount content.HeroDiscount, level1 map[content.ResourceType]int) *content.Hero {
	level2 := make(map[content.ResourceType]int, len(level1))
	for k, v := range level1 {
		level2[k] = v + 1
	}
	return &content.Hero{
		ID:          id,
		Name:        "Sir " + id,
		Class:       class,
		Description: class + " description",
		Flavor:      class + " flavor",
		Quote:       class + " quote",
		Discount:    discount,
		Resources:   map[int]map[content.ResourceType]int{1: level1, 2: level2},
	}
}

// File returns the authored form of the test catalog. Each call returns a
// fresh copy that callers may modify.
func File() *content.CatalogFile {
	tier := func(n int, last bool) *content.Tier {
		t := &content.Tier{}
		for i := 1; i <= 3; i++ {
			t.Events = append(t.Events, obstacle(fmt.Sprintf("event_%d_%d", n, i), "",
				cost(content.Arcane, 2, content.Stealth, 2, content.Health, 1, content.Time, 3)))
		}
		loots := []content.LootType{content.LootConsumable, content.LootEquipment}
		for i := 1; i <= 12; i++ {
			t.Monsters = append(t.Monsters, obstacle(fmt.Sprintf("monster_%d_%d", n, i), loots[i%2],
				cost(content.Physical, 2, content.Divine, 3, content.Health, 2, content.Time, 5)))
		}
		for i := 1; i <= 3; i++ {
			t.Equipment = append(t.Equipment, item(fmt.Sprintf("equipment_%d_%d", n, i), cost(content.Physical, i)))
			t.Consumables = append(t.Consumables, item(fmt.Sprintf("consumable_%d_%d", n, i), cost(content.Health, i)))
		}
		loot := content.LootLevelUp
		if last {
			loot = content.LootWin
		}
		t.Boss = obstacle(fmt.Sprintf("boss_%d", n), loot, cost(content.Physical, 5, content.Time, 10))
		return t
	}

	return &content.CatalogFile{
		Messages: content.MessageSet{
			Static: map[string]string{
				"global.confirm":     "OK",
				"global.yes":         "Yes",
				"global.no":          "No",
				"global.cancel":      "Cancel",
				"global.restart":     "Restart",
				"opening.new_game":   "Quick Start",
				"opening.text":       "Welcome to Cordan.",
				"action.fight":       "Fight",
				"action.mass_cure":   "Mass Cure",
				"hero_detail.select": "Select",
				"hero_detail.cancel": "Back",
			},
			Dynamic: map[string][]string{
				"restart": {"Once more."},
			},
		},
		Heroes: []*content.Hero{
			hero("knight", "Knight", content.HeroDiscount{Type: content.MonsterDiscount, Resource: content.Physical},
				map[content.ResourceType]int{content.Physical: 3, content.Divine: 1}),
			hero("wizard", "Wizard", content.HeroDiscount{Type: content.EventDiscount, Resource: content.Arcane},
				map[content.ResourceType]int{content.Arcane: 3, content.Mechanical: 1}),
			hero("cleric", "Cleric", content.HeroDiscount{Type: content.MonsterDiscount, Resource: content.Divine},
				map[content.ResourceType]int{content.Divine: 3, content.Physical: 1}),
			hero("rogue", "Rogue", content.HeroDiscount{Type: content.EventDiscount, Resource: content.Stealth},
				map[content.ResourceType]int{content.Stealth: 3, content.Mechanical: 2}),
			hero("ranger", "Ranger", content.HeroDiscount{Type: content.MonsterDiscount, Resource: content.Physical},
				map[content.ResourceType]int{content.Physical: 2, content.Stealth: 2}),
		},
		Tiers: []*content.Tier{tier(1, false), tier(2, true)},
	}
}

// Catalog returns the validated test catalog.
func Catalog() *content.Catalog {
	c, err := content.NewCatalog(File())
	if err != nil {
		panic(err)
	}
	return c
}
