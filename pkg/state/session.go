// Package state holds one player's game session and the operations the state
// machine performs on it.
package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/party"
)

// StateID names a state of the game state machine.
type StateID string

const (
	Title           StateID = "TITLE"
	Restarting      StateID = "RESTARTING"
	Instructions    StateID = "INSTRUCTIONS"
	SelectHeroes    StateID = "SELECT_HEROES"
	HeroDetail      StateID = "HERO_DETAIL"
	EnterDungeon    StateID = "ENTER_DUNGEON"
	Event           StateID = "EVENT"
	Action          StateID = "ACTION"
	Monster         StateID = "MONSTER"
	ReadyForBoss    StateID = "READY_FOR_BOSS"
	LootConsumable  StateID = "LOOT_CONSUMABLE"
	LootEquipment   StateID = "LOOT_EQUIPMENT"
	LootLevelUp     StateID = "LOOT_LEVELUP"
	UseConsumable   StateID = "USE_CONSUMABLE"
	ShortRest       StateID = "SHORT_REST"
	LongRest        StateID = "LONG_REST"
	Transmute       StateID = "TRANSMUTE"
	TransmuteResult StateID = "TRANSMUTE_RESULT"
	Cure            StateID = "CURE"
	MassCure        StateID = "MASS_CURE"
	Scout           StateID = "SCOUT"
	SecretDoor      StateID = "SECRET_DOOR"
	OutOfHealth     StateID = "OUT_OF_HEALTH"
	OutOfTime       StateID = "OUT_OF_TIME"
	Victory         StateID = "VICTORY"
)

// Session is the full record of one player's game.
type Session struct {
	ID    uuid.UUID    `json:"id"`
	State StateID      `json:"state"`
	Party *party.Party `json:"party"`

	Floor int `json:"floor"`
	Kills int `json:"kills"` // monsters defeated on the current floor

	// Resources is nil until resources are first calculated.
	Resources    map[content.ResourceType]int `json:"resources"`
	MaxResources map[content.ResourceType]int `json:"max_resources"`

	Equipment   []*content.Item `json:"equipment,omitempty"`
	Consumables []*content.Item `json:"consumables,omitempty"`

	EventDeck      []*content.Obstacle `json:"event_deck,omitempty"`
	MonsterDeck    []*content.Obstacle `json:"monster_deck,omitempty"`
	EquipmentDeck  []*content.Item     `json:"equipment_deck,omitempty"`
	ConsumableDeck []*content.Item     `json:"consumable_deck,omitempty"`

	SeenInstructions map[StateID]bool `json:"seen_instructions,omitempty"`

	// Scratch values carried between states.
	HeroIndex       int           `json:"hero_index"`                 // hero shown by HeroDetail
	ReturnState     StateID       `json:"return_state,omitempty"`     // where UseConsumable goes back to
	TransmuteResult *content.Item `json:"transmute_result,omitempty"` // shown by TransmuteResult
	FightingBoss    bool          `json:"fighting_boss,omitempty"`
	LootAwarded     bool          `json:"loot_awarded,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns a fresh session with an empty level 1 party, positioned
// at the given state.
func NewSession(start StateID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:               uuid.New(),
		State:            start,
		Party:            party.New(),
		MaxResources:     make(map[content.ResourceType]int),
		SeenInstructions: make(map[StateID]bool),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Reset discards all game progress so a new game can begin. Identity and the
// instructions already shown survive.
func (s *Session) Reset() {
	fresh := NewSession(s.State)
	fresh.ID = s.ID
	fresh.CreatedAt = s.CreatedAt
	if s.SeenInstructions != nil {
		fresh.SeenInstructions = s.SeenInstructions
	}
	*s = *fresh
}

// SeeInstructions marks id's instructions as shown and reports whether this is
// the first time.
func (s *Session) SeeInstructions(id StateID) bool {
	if s.SeenInstructions == nil {
		s.SeenInstructions = make(map[StateID]bool)
	}
	if s.SeenInstructions[id] {
		return false
	}
	s.SeenInstructions[id] = true
	return true
}

// ForgetInstructions makes id's instructions show again on the next visit.
func (s *Session) ForgetInstructions(id StateID) {
	delete(s.SeenInstructions, id)
}

// ListHeroes renders the party roster.
func (s *Session) ListHeroes() string {
	if s.Party == nil {
		return ""
	}
	return s.Party.ListHeroes()
}

// Touch records a modification.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
