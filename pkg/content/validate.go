package content

import (
	"fmt"
	"regexp"
	"strings"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateID(context, id string) {
	if !idPattern.MatchString(id) {
		v.addf("%s id %q must be lowercase snake_case", context, id)
	}
}

func (v *validator) validateResources(context string, r Resources, requireCost bool) {
	nonzero := 0
	for kind, value := range r {
		if !kind.Valid() {
			v.addf("%s has unknown resource %q", context, kind)
			continue
		}
		if value.Value < 0 {
			v.addf("%s has negative %s", context, kind.Name())
		}
		if value.Value != 0 {
			nonzero++
		}
	}
	if requireCost && nonzero == 0 {
		v.addf("%s has no resource costs", context)
	}
}

// Validate checks the catalog for content-integrity problems. Every problem
// found is reported in a single error wrapping ErrInvalidCatalog.
func (c *Catalog) Validate() error {
	v := &validator{}

	if len(c.heroes) < PartySize {
		v.addf("catalog needs at least %d heroes, has %d", PartySize, len(c.heroes))
	}
	heroIDs := make(map[string]bool)
	for i, h := range c.heroes {
		if h == nil {
			v.addf("hero %d is empty", i+1)
			continue
		}
		v.validateID("hero", h.ID)
		if heroIDs[h.ID] {
			v.addf("duplicate hero id %q", h.ID)
		}
		heroIDs[h.ID] = true
		if h.Class == "" {
			v.addf("hero %q has no class", h.ID)
		}
		if h.Discount.Type != EventDiscount && h.Discount.Type != MonsterDiscount {
			v.addf("hero %q has unknown discount type %q", h.ID, h.Discount.Type)
		}
		if !h.Discount.Resource.Valid() {
			v.addf("hero %q has unknown discount resource %q", h.ID, h.Discount.Resource)
		}
		if _, ok := h.Resources[1]; !ok {
			v.addf("hero %q has no level 1 resources", h.ID)
		}
		for level, kinds := range h.Resources {
			for kind := range kinds {
				if !kind.Valid() {
					v.addf("hero %q level %d has unknown resource %q", h.ID, level, kind)
				}
			}
		}
	}

	if c.maxTier == 0 {
		v.addf("catalog has no tiers")
	}
	win := false
	for n := 1; n <= c.maxTier; n++ {
		t, ok := c.tiers[n]
		if !ok {
			v.addf("tier %d is empty", n)
			continue
		}
		c.validateTier(v, t)
		for _, m := range append(append([]*Obstacle{}, t.Monsters...), t.Boss) {
			if m != nil && m.Loot == LootWin {
				win = true
			}
		}
	}
	if c.maxTier > 0 && !win {
		v.addf("no monster awards %s", LootWin)
	}

	if len(v.problems) > 0 {
		return fmt.Errorf("%w:\n%s", ErrInvalidCatalog, strings.Join(v.problems, "\n"))
	}
	return nil
}

func (c *Catalog) validateTier(v *validator, t *Tier) {
	name := fmt.Sprintf("tier %d", t.Number)
	if len(t.Events) == 0 {
		v.addf("%s has no events", name)
	}
	if len(t.Monsters) == 0 {
		v.addf("%s has no monsters", name)
	}
	if len(t.Equipment) == 0 {
		v.addf("%s has no equipment", name)
	}
	if len(t.Consumables) == 0 {
		v.addf("%s has no consumables", name)
	}

	ids := make(map[string]bool)
	checkID := func(kind, id string) {
		v.validateID(name+" "+kind, id)
		if ids[id] {
			v.addf("%s has duplicate id %q", name, id)
		}
		ids[id] = true
	}

	for _, e := range t.Events {
		checkID("event", e.ID)
		v.validateResources(fmt.Sprintf("%s event %q", name, e.ID), e.Resources, true)
	}
	monsters := t.Monsters
	if t.Boss == nil {
		v.addf("%s has no boss", name)
	} else {
		monsters = append(append([]*Obstacle{}, monsters...), t.Boss)
	}
	for _, m := range monsters {
		checkID("monster", m.ID)
		context := fmt.Sprintf("%s monster %q", name, m.ID)
		v.validateResources(context, m.Resources, true)
		if !m.Loot.Valid() {
			v.addf("%s has unknown loot type %q", context, m.Loot)
		}
		if m.Loot == LootLevelUp && t.Number == c.maxTier {
			v.addf("%s awards %s on the last tier", context, LootLevelUp)
		}
	}
	for _, i := range t.Equipment {
		checkID("equipment", i.ID)
		v.validateResources(fmt.Sprintf("%s equipment %q", name, i.ID), i.Resources, false)
	}
	for _, i := range t.Consumables {
		checkID("consumable", i.ID)
		v.validateResources(fmt.Sprintf("%s consumable %q", name, i.ID), i.Resources, false)
	}
}
