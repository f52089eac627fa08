package state

import (
	"fmt"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
)

// RequiredKills is the number of monsters a party must defeat on a floor
// before it may challenge the floor's boss.
const RequiredKills = 10

func shuffled[T any](pool []T, rng content.Rand) []T {
	deck := make([]T, len(pool))
	copy(deck, pool)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// NextFloor descends one floor: the four decks are rebuilt from the new
// floor's tier and the kill count resets.
func (s *Session) NextFloor(store content.Store, rng content.Rand) error {
	tier, err := store.Tier(s.Floor + 1)
	if err != nil {
		return fmt.Errorf("failed to enter floor %d: %w", s.Floor+1, err)
	}
	s.Floor = tier.Number
	s.EventDeck = shuffled(tier.Events, rng)
	s.MonsterDeck = shuffled(tier.Monsters, rng)
	s.EquipmentDeck = shuffled(tier.Equipment, rng)
	s.ConsumableDeck = shuffled(tier.Consumables, rng)
	s.Kills = 0
	s.FightingBoss = false
	return nil
}

func (s *Session) tier(store content.Store) (*content.Tier, error) {
	tier, err := store.Tier(s.Floor)
	if err != nil {
		return nil, fmt.Errorf("failed to load floor %d: %w", s.Floor, err)
	}
	return tier, nil
}

// UpcomingEvent returns the event on top of the deck. An empty deck is
// reshuffled from the floor's tier first.
func (s *Session) UpcomingEvent(store content.Store, rng content.Rand) (*content.Obstacle, error) {
	if len(s.EventDeck) == 0 {
		tier, err := s.tier(store)
		if err != nil {
			return nil, err
		}
		if len(tier.Events) == 0 {
			return nil, fmt.Errorf("floor %d events: %w", s.Floor, content.ErrEmptyPool)
		}
		s.EventDeck = shuffled(tier.Events, rng)
	}
	return s.EventDeck[0], nil
}

// NextEvent discards the top event.
func (s *Session) NextEvent() {
	if len(s.EventDeck) > 0 {
		s.EventDeck = s.EventDeck[1:]
	}
}

// RedrawEvent moves the top event to the bottom of the deck.
func (s *Session) RedrawEvent() {
	if len(s.EventDeck) > 1 {
		s.EventDeck = append(s.EventDeck[1:], s.EventDeck[0])
	}
}

// OutOfMonsters reports whether the floor's monster deck is exhausted. The
// monster deck is never refilled.
func (s *Session) OutOfMonsters() bool {
	return len(s.MonsterDeck) == 0
}

// UpcomingMonster returns the monster the party faces next: the floor's boss
// while fighting the boss, otherwise the top of the monster deck.
func (s *Session) UpcomingMonster(store content.Store) (*content.Obstacle, error) {
	if s.FightingBoss {
		tier, err := s.tier(store)
		if err != nil {
			return nil, err
		}
		if tier.Boss == nil {
			return nil, fmt.Errorf("floor %d boss: %w", s.Floor, content.ErrEmptyPool)
		}
		return tier.Boss, nil
	}
	if s.OutOfMonsters() {
		return nil, fmt.Errorf("floor %d monsters: %w", s.Floor, content.ErrEmptyPool)
	}
	return s.MonsterDeck[0], nil
}

// DefeatMonster records a kill. Regular monsters leave the deck; the boss is
// not part of it.
func (s *Session) DefeatMonster() {
	if s.FightingBoss {
		s.FightingBoss = false
	} else if len(s.MonsterDeck) > 0 {
		s.MonsterDeck = s.MonsterDeck[1:]
	}
	s.Kills++
}

// RedrawMonster moves the top monster to the bottom of the deck.
func (s *Session) RedrawMonster() {
	if len(s.MonsterDeck) > 1 {
		s.MonsterDeck = append(s.MonsterDeck[1:], s.MonsterDeck[0])
	}
}

// CanFightBoss reports whether the party has earned a shot at the boss.
func (s *Session) CanFightBoss() bool {
	return s.Kills >= RequiredKills
}

// DrawItem takes the top item of kind's deck, reshuffling the deck from the
// floor's tier when it has run dry.
func (s *Session) DrawItem(kind content.ItemKind, store content.Store, rng content.Rand) (*content.Item, error) {
	deck := &s.EquipmentDeck
	if kind == content.KindConsumable {
		deck = &s.ConsumableDeck
	}
	if len(*deck) == 0 {
		tier, err := s.tier(store)
		if err != nil {
			return nil, err
		}
		pool := tier.Items(kind)
		if len(pool) == 0 {
			return nil, fmt.Errorf("floor %d %s: %w", s.Floor, kind.Label(), content.ErrEmptyPool)
		}
		*deck = shuffled(pool, rng)
	}
	item := (*deck)[0]
	*deck = (*deck)[1:]
	return item, nil
}
