package state

import "github.com/Codelizard/HeroesOfCordan/pkg/content"

var _ content.Spender = (*Session)(nil)

// ResourceCount returns the current amount of r.
func (s *Session) ResourceCount(r content.ResourceType) int {
	return s.Resources[r]
}

// ResourceMax returns the maximum amount of r.
func (s *Session) ResourceMax(r content.ResourceType) int {
	return s.MaxResources[r]
}

// Discount returns the party's discount for r against category.
func (s *Session) Discount(category content.DiscountType, r content.ResourceType) int {
	if s.Party == nil {
		return 0
	}
	return s.Party.Discount(category, r)
}

// GainResource adds amount to r. Without overcharge the result is capped at
// the maximum.
func (s *Session) GainResource(r content.ResourceType, amount int, overcharge bool) {
	s.ensureResources()
	value := s.Resources[r] + amount
	if !overcharge {
		value = min(value, s.ResourceMax(r))
	}
	s.Resources[r] = value
}

// SpendResource subtracts amount from r. Callers check affordability first.
func (s *Session) SpendResource(r content.ResourceType, amount int) {
	s.ensureResources()
	s.Resources[r] -= amount
}

func (s *Session) ensureResources() {
	if s.Resources == nil {
		s.Resources = make(map[content.ResourceType]int)
	}
}

// CalculateResources recomputes maximums from the party and held equipment.
// Current values are only seeded the first time.
func (s *Session) CalculateResources() {
	s.MaxResources = s.Party.MaxResources()
	if s.Resources == nil {
		s.Resources = s.Party.MaxResources()
	}
	for _, e := range s.Equipment {
		for kind, value := range e.Resources {
			if value.Value != 0 {
				s.MaxResources[kind] += value.Value
			}
		}
	}
}

// RefillResources restores every resource that cannot always be spent.
func (s *Session) RefillResources() {
	s.ensureResources()
	for _, r := range content.AllResources {
		if !r.CanAlwaysSpend() {
			s.Resources[r] = s.ResourceMax(r)
		}
	}
}

// RefillHealth restores Health.
func (s *Session) RefillHealth() {
	s.ensureResources()
	s.Resources[content.Health] = s.ResourceMax(content.Health)
}

// RefillAll restores everything a long rest restores.
func (s *Session) RefillAll() {
	s.RefillResources()
	s.RefillHealth()
}

func (s *Session) anyBelowMax(kinds []content.ResourceType) bool {
	for _, r := range kinds {
		if s.ResourceCount(r) < s.ResourceMax(r) {
			return true
		}
	}
	return false
}

// CanShortRest reports whether a short rest would restore anything.
func (s *Session) CanShortRest() bool {
	return s.anyBelowMax(content.ShortRestResources)
}

// CanExtendedRest reports whether a long rest would restore anything.
func (s *Session) CanExtendedRest() bool {
	return s.anyBelowMax(content.ExtendedRestResources)
}

// ApplyConsumable adds every resource on item to the current pools, ignoring
// maximums.
func (s *Session) ApplyConsumable(item *content.Item) {
	for _, r := range content.AllResources {
		if v := item.Resources.Amount(r); v != 0 {
			s.GainResource(r, v, true)
		}
	}
}

// OutOfTime reports whether Time is exhausted.
func (s *Session) OutOfTime() bool {
	return s.ResourceCount(content.Time) <= 0
}

// OutOfHealth reports whether Health is exhausted.
func (s *Session) OutOfHealth() bool {
	return s.ResourceCount(content.Health) <= 0
}
