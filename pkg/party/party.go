// Package party aggregates heroes into resource maximums and discounts.
package party

import (
	"strings"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
)

const (
	FullPartySize = content.PartySize
	TimeLimit     = 250 // Time maximum regardless of party
	HealthBase    = 10  // Health maximum at level 1
)

// Party is the player's group of heroes.
type Party struct {
	Heroes []*content.Hero `json:"heroes"`
	Level  int             `json:"level"`
}

// New returns an empty level 1 party.
func New() *Party {
	return &Party{Level: 1}
}

// Add appends a hero. Heroes already in the party and additions past a full
// party are ignored.
func (p *Party) Add(h *content.Hero) bool {
	if h == nil || p.IsFull() || p.Contains(h) {
		return false
	}
	p.Heroes = append(p.Heroes, h)
	return true
}

// Contains reports whether a hero with h's id is in the party.
func (p *Party) Contains(h *content.Hero) bool {
	for _, member := range p.Heroes {
		if member.ID == h.ID {
			return true
		}
	}
	return false
}

func (p *Party) IsFull() bool {
	return len(p.Heroes) >= FullPartySize
}

// MaxResources derives the party's resource maximums at its current level.
func (p *Party) MaxResources() map[content.ResourceType]int {
	maxima := map[content.ResourceType]int{
		content.Time:   TimeLimit,
		content.Health: HealthBase + p.Level - 1,
	}
	for _, h := range p.Heroes {
		for kind, amount := range h.LevelResources(p.Level) {
			if kind == content.Time || kind == content.Health {
				continue
			}
			maxima[kind] += amount
		}
	}
	return maxima
}

// Discount counts the heroes whose discount matches category and resource.
func (p *Party) Discount(category content.DiscountType, r content.ResourceType) int {
	n := 0
	for _, h := range p.Heroes {
		if h.Discount.Type == category && h.Discount.Resource == r {
			n++
		}
	}
	return n
}

// ListHeroes renders the roster as "Name the Class" joined by commas.
func (p *Party) ListHeroes() string {
	names := make([]string, 0, len(p.Heroes))
	for _, h := range p.Heroes {
		names = append(names, h.Title())
	}
	return strings.Join(names, ", ")
}
