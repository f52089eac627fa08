package content

import (
	"errors"
	"fmt"
)

// PartySize is the number of heroes in a full party.
const PartySize = 4

var (
	ErrTierNotFound   = errors.New("tier not found")
	ErrEmptyPool      = errors.New("content pool is empty")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Store is the read-only game content the engine draws from.
type Store interface {
	Heroes() []*Hero
	Tier(n int) (*Tier, error)
	PickFourRandomHeroes(rng Rand) []*Hero
}

// Messages resolves player-facing text. Static messages are looked up by key;
// dynamic messages are picked at random from a category.
type Messages interface {
	Message(key string) string
	RandomMessage(category string, rng Rand) string
}

// defaultDynamic backs dynamic categories the catalog does not author.
var defaultDynamic = map[string]string{
	"restart":       "Restarting...",
	"enter_dungeon": "Your party assembled, you descend into the dungeon...",
	"short_rest":    "You take a short break to recover your strength.",
	"long_rest":     "You camp out for a while to recover your strength and tend to your injuries.",
	"cure":          "You channel divine magic to heal a wound.",
	"mass_cure":     "You channel divine magic to heal your party's wounds.",
	"out_of_time":   "You have run out of time; you cannot hope to complete your quest now.",
	"out_of_health": "Your party is forced to retreat and hide to heal their injuries.",
}

// MessageSet is the authored text of a catalog.
type MessageSet struct {
	Static  map[string]string   `yaml:"static" json:"static"`
	Dynamic map[string][]string `yaml:"dynamic" json:"dynamic"`
}

// CatalogFile is the authored shape of a catalog before validation.
type CatalogFile struct {
	Messages MessageSet `yaml:"messages" json:"messages"`
	Heroes   []*Hero    `yaml:"heroes" json:"heroes"`
	Tiers    []*Tier    `yaml:"tiers" json:"tiers"`
}

// Catalog is a validated, frozen content set. It implements Store and
// Messages.
type Catalog struct {
	messages MessageSet
	heroes   []*Hero
	tiers    map[int]*Tier
	maxTier  int
}

var (
	_ Store    = (*Catalog)(nil)
	_ Messages = (*Catalog)(nil)
)

// NewCatalog finalizes and validates f. Tiers are numbered from 1 in the
// order they were authored.
func NewCatalog(f *CatalogFile) (*Catalog, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: no content", ErrInvalidCatalog)
	}
	c := &Catalog{
		messages: f.Messages,
		heroes:   f.Heroes,
		tiers:    make(map[int]*Tier, len(f.Tiers)),
	}
	for i, t := range f.Tiers {
		if t == nil {
			continue
		}
		t.finalize(i + 1)
		c.tiers[t.Number] = t
		c.maxTier = t.Number
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Heroes returns every recruitable hero in authored order.
func (c *Catalog) Heroes() []*Hero {
	return c.heroes
}

// Tier returns floor n's content.
func (c *Catalog) Tier(n int) (*Tier, error) {
	t, ok := c.tiers[n]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTierNotFound, n)
	}
	return t, nil
}

// TierCount is the number of floors in the catalog.
func (c *Catalog) TierCount() int {
	return c.maxTier
}

// PickFourRandomHeroes returns a random full party.
func (c *Catalog) PickFourRandomHeroes(rng Rand) []*Hero {
	heroes := make([]*Hero, len(c.heroes))
	copy(heroes, c.heroes)
	rng.Shuffle(len(heroes), func(i, j int) {
		heroes[i], heroes[j] = heroes[j], heroes[i]
	})
	if len(heroes) > PartySize {
		heroes = heroes[:PartySize]
	}
	return heroes
}

// Message returns the static text for key, or key itself when the catalog
// has no such message.
func (c *Catalog) Message(key string) string {
	if text, ok := c.messages.Static[key]; ok {
		return text
	}
	return key
}

// RandomMessage returns a random text from category.
func (c *Catalog) RandomMessage(category string, rng Rand) string {
	if text := pick(c.messages.Dynamic[category], rng); text != "" {
		return text
	}
	if text, ok := defaultDynamic[category]; ok {
		return text
	}
	return category
}

// MissingMessages lists the keys that have no static text.
func (c *Catalog) MissingMessages(keys []string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := c.messages.Static[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// MissingCategories lists the dynamic categories with no authored text.
func (c *Catalog) MissingCategories(categories []string) []string {
	var missing []string
	for _, cat := range categories {
		if len(c.messages.Dynamic[cat]) == 0 {
			missing = append(missing, cat)
		}
	}
	return missing
}
