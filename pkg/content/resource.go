package content

import (
	"strings"

	"golang.org/x/text/cases"
)

// ResourceType is one of the pools a party spends to overcome obstacles.
type ResourceType string

const (
	Physical   ResourceType = "PHYSICAL"
	Arcane     ResourceType = "ARCANE"
	Divine     ResourceType = "DIVINE"
	Stealth    ResourceType = "STEALTH"
	Mechanical ResourceType = "MECHANICAL"
	Health     ResourceType = "HEALTH"
	Time       ResourceType = "TIME"
)

// AllResources lists every resource type in declaration order. Anything shown
// to the player iterates this slice so option ordering stays stable.
var AllResources = []ResourceType{Physical, Arcane, Divine, Stealth, Mechanical, Health, Time}

// ShortRestResources are restored by a short rest.
var ShortRestResources = []ResourceType{Physical, Arcane, Divine, Stealth, Mechanical}

// ExtendedRestResources are restored by a long rest.
var ExtendedRestResources = []ResourceType{Physical, Arcane, Divine, Stealth, Mechanical, Health}

var resourceNames = map[ResourceType]string{
	Physical:   "Physical",
	Arcane:     "Arcane",
	Divine:     "Divine",
	Stealth:    "Stealth",
	Mechanical: "Mechanical",
	Health:     "Health",
	Time:       "Time",
}

// Fold normalizes player text for case-insensitive matching. Casers are
// stateful, so a fresh one is built per call.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Name returns the player-facing name of the resource.
func (r ResourceType) Name() string {
	if name, ok := resourceNames[r]; ok {
		return name
	}
	return string(r)
}

// CanAlwaysSpend reports whether the resource may be spent into negative
// values. Exhaustion of these resources is checked after spending instead.
func (r ResourceType) CanAlwaysSpend() bool {
	return r == Health || r == Time
}

// Valid reports whether r is one of the declared resource types.
func (r ResourceType) Valid() bool {
	_, ok := resourceNames[r]
	return ok
}

// ParseResourceType matches player text against resource identifiers and
// display names, ignoring case and surrounding whitespace.
func ParseResourceType(text string) (ResourceType, bool) {
	folded := Fold(text)
	if folded == "" {
		return "", false
	}
	for _, r := range AllResources {
		if folded == Fold(string(r)) || folded == Fold(r.Name()) {
			return r, true
		}
	}
	return "", false
}

// ResourceValue is an amount attached to an obstacle or item, optionally with
// flavor text describing how the resource is used.
type ResourceValue struct {
	Value int      `yaml:"value" json:"value"`
	Texts []string `yaml:"texts,omitempty" json:"texts,omitempty"`
}

// RandomText returns one of the value's texts, or "" when there are none.
func (v ResourceValue) RandomText(rng Rand) string {
	return pick(v.Texts, rng)
}

// Resources maps resource types to the values attached to a content object.
type Resources map[ResourceType]ResourceValue

// Amount returns the value for r, or 0 when absent.
func (r Resources) Amount(t ResourceType) int {
	if r == nil {
		return 0
	}
	return r[t].Value
}
