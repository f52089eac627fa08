package content

import (
	"fmt"
	"strings"
)

// HeroDiscount reduces the cost of one resource against one obstacle category.
type HeroDiscount struct {
	Type     DiscountType `yaml:"type" json:"type"`
	Resource ResourceType `yaml:"resource" json:"resource"`
}

func (d HeroDiscount) String() string {
	return fmt.Sprintf("%s vs. %s", d.Resource.Name(), d.Type.Label())
}

// Hero is a recruitable party member.
type Hero struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Class       string       `yaml:"class" json:"class"`
	Description string       `yaml:"description" json:"description"`
	Flavor      string       `yaml:"flavor" json:"flavor,omitempty"`
	Quote       string       `yaml:"quote" json:"quote,omitempty"`
	Discount    HeroDiscount `yaml:"discount" json:"discount"`

	// Resources is the hero's contribution to party maximums, by party level.
	Resources map[int]map[ResourceType]int `yaml:"resources" json:"resources"`
}

// LevelResources returns the hero's contribution at the given party level.
// Levels past the end of the table use the highest authored level.
func (h *Hero) LevelResources(level int) map[ResourceType]int {
	if r, ok := h.Resources[level]; ok {
		return r
	}
	best := 0
	for l := range h.Resources {
		if l <= level && l > best {
			best = l
		}
	}
	return h.Resources[best]
}

// InitialResourcesText renders the level 1 contribution as "Kind: N" pairs.
func (h *Hero) InitialResourcesText() string {
	initial := h.LevelResources(1)
	var parts []string
	for _, r := range AllResources {
		if v := initial[r]; v != 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", r.Name(), v))
		}
	}
	return strings.Join(parts, " | ")
}

// Title is the "Name the Class" form used in party rosters.
func (h *Hero) Title() string {
	return h.Name + " the " + h.Class
}

// Detail renders the hero for the recruitment screen.
func (h *Hero) Detail() string {
	return fmt.Sprintf("%s: %s\n%s\n\n%s\n\n%s", h.Class, h.Description, h.InitialResourcesText(), h.Flavor, h.Quote)
}
