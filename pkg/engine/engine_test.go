package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/content/contenttest"
	"github.com/Codelizard/HeroesOfCordan/pkg/party"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
	"github.com/Codelizard/HeroesOfCordan/pkg/storage"
)

type harness struct {
	engine  *Engine
	store   *storage.MemoryStorage
	catalog *content.Catalog
	key     storage.SessionKey
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	catalog := contenttest.Catalog()
	store := storage.NewMemoryStorage()
	e, err := New(Options{
		Content:  catalog,
		Messages: catalog,
		Sessions: store,
		NewRand:  func() content.Rand { return contenttest.Rand(1) },
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return &harness{
		engine:  e,
		store:   store,
		catalog: catalog,
		key:     storage.SessionKey{Platform: "test", UserID: "player"},
	}
}

func (h *harness) send(t *testing.T, text string) *Response {
	t.Helper()
	resp, err := h.engine.Handle(context.Background(), h.key, text)
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func (h *harness) session(t *testing.T) *state.Session {
	t.Helper()
	s, err := h.store.LoadSession(context.Background(), h.key)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func (h *harness) put(t *testing.T, s *state.Session) {
	t.Helper()
	require.NoError(t, h.store.SaveSession(context.Background(), h.key, s))
}

// dungeon returns a session on floor 1 with the knight, wizard, cleric and
// rogue at full resources.
func (h *harness) dungeon(t *testing.T, at state.StateID) *state.Session {
	t.Helper()
	s := state.NewSession(at)
	for _, hero := range h.catalog.Heroes()[:party.FullPartySize] {
		s.Party.Add(hero)
	}
	s.CalculateResources()
	require.NoError(t, s.NextFloor(h.catalog, contenttest.Rand(1)))
	return s
}

func TestNewRequiresDependencies(t *testing.T) {
	catalog := contenttest.Catalog()
	store := storage.NewMemoryStorage()

	_, err := New(Options{Messages: catalog, Sessions: store})
	assert.Error(t, err)
	_, err = New(Options{Content: catalog, Sessions: store})
	assert.Error(t, err)
	_, err = New(Options{Content: catalog, Messages: catalog})
	assert.Error(t, err)

	e, err := New(Options{Content: catalog, Messages: catalog, Sessions: store})
	require.NoError(t, err)
	assert.NotNil(t, e.locker)
	assert.NotNil(t, e.newRand)
	assert.NotNil(t, e.logger)
}

func TestHandleInvalidKey(t *testing.T) {
	h := newHarness(t)
	_, err := h.engine.Handle(context.Background(), storage.SessionKey{Platform: "test"}, "hi")
	assert.Error(t, err)
}

func TestFirstMessageShowsTitle(t *testing.T) {
	h := newHarness(t)

	resp := h.send(t, "hello")

	assert.Equal(t, "Welcome to Cordan.", resp.Text)
	assert.Equal(t, []string{"opening.instructions", "Quick Start", "opening.advanced_start"}, resp.Options)
	assert.Equal(t, state.Title, h.session(t).State)
}

func TestQuickStart(t *testing.T) {
	h := newHarness(t)
	h.send(t, "hello")

	resp := h.send(t, "quick start")

	s := h.session(t)
	assert.Equal(t, state.EnterDungeon, s.State)
	assert.True(t, s.Party.IsFull())
	assert.Equal(t, party.TimeLimit, s.ResourceCount(content.Time))
	assert.Contains(t, resp.Text, "Your party assembled, you descend into the dungeon...\n\n"+s.ListHeroes()+"...\n")
	assert.Equal(t, []string{"enter_dungeon.start"}, resp.Options)

	resp = h.send(t, "onward")

	s = h.session(t)
	assert.Equal(t, state.Event, s.State)
	assert.Equal(t, 1, s.Floor)
	assert.Len(t, s.EventDeck, 3)
	assert.Contains(t, resp.Text, "event.instructions\n\n--The event_1_")
}

func TestInstructionsLeadToRandomParty(t *testing.T) {
	h := newHarness(t)
	h.send(t, "hello")

	resp := h.send(t, "Opening.Instructions")
	assert.Equal(t, "instructions.text", resp.Text)
	assert.Equal(t, []string{"OK"}, resp.Options)

	h.send(t, "whatever")
	s := h.session(t)
	assert.Equal(t, state.EnterDungeon, s.State)
	assert.Len(t, s.Party.Heroes, party.FullPartySize)
}

func TestAdvancedStart(t *testing.T) {
	h := newHarness(t)
	h.send(t, "hello")

	resp := h.send(t, "opening.advanced_start")
	assert.Equal(t, "select_hero.text\n"+
		"\n1: Knight (Knight description)"+
		"\n2: Wizard (Wizard description)"+
		"\n3: Cleric (Cleric description)"+
		"\n4: Rogue (Rogue description)"+
		"\n5: Ranger (Ranger description)", resp.Text)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, resp.Options)
	assert.Equal(t, 4, resp.Columns)

	resp = h.send(t, "1")
	assert.Equal(t, "Knight: Knight description\nPhysical: 3 | Divine: 1\n\nKnight flavor\n\nKnight quote", resp.Text)
	assert.Equal(t, []string{"Select", "Back"}, resp.Options)

	h.send(t, "back")
	assert.Equal(t, state.SelectHeroes, h.session(t).State)
	assert.Empty(t, h.session(t).Party.Heroes)

	h.send(t, "1")
	resp = h.send(t, "select")
	assert.Equal(t, []string{"2", "3", "4", "5"}, resp.Options)

	t.Run("party members cannot be picked twice", func(t *testing.T) {
		h.send(t, "1")
		assert.Equal(t, state.SelectHeroes, h.session(t).State)
		h.send(t, "zero")
		assert.Equal(t, state.SelectHeroes, h.session(t).State)
		h.send(t, "9")
		assert.Equal(t, state.SelectHeroes, h.session(t).State)
	})

	for _, pick := range []string{"5", "3", "2"} {
		h.send(t, pick)
		h.send(t, "Select")
	}

	s := h.session(t)
	assert.Equal(t, state.EnterDungeon, s.State)
	assert.Equal(t, "Sir knight the Knight, Sir ranger the Ranger, Sir cleric the Cleric, Sir wizard the Wizard", s.ListHeroes())
	assert.Equal(t, 6, s.ResourceMax(content.Physical))
}

func TestRestart(t *testing.T) {
	h := newHarness(t)
	h.put(t, h.dungeon(t, state.Event))
	oldID := h.session(t).ID

	resp := h.send(t, "/restart")

	assert.Equal(t, "Once more.", resp.Text)
	assert.Equal(t, []string{"OK"}, resp.Options)
	s := h.session(t)
	assert.Equal(t, state.Restarting, s.State)
	assert.NotEqual(t, oldID, s.ID)
	assert.Empty(t, s.Party.Heroes)

	h.send(t, "ok")
	assert.Equal(t, state.Title, h.session(t).State)

	h.put(t, h.dungeon(t, state.Action))
	h.send(t, "RESTART")
	assert.Equal(t, state.Restarting, h.session(t).State)
}

func TestStartCommand(t *testing.T) {
	h := newHarness(t)
	h.put(t, h.dungeon(t, state.Monster))

	resp := h.send(t, "/start")

	assert.Equal(t, "Welcome to Cordan.", resp.Text)
	assert.Equal(t, state.Title, h.session(t).State)
	assert.Zero(t, h.session(t).Floor)
}

func TestNewGameAfterVictoryStartsOnFloorOne(t *testing.T) {
	h := newHarness(t)
	s := h.dungeon(t, state.Title)
	require.NoError(t, s.NextFloor(h.catalog, contenttest.Rand(1)))
	s.Kills = 4
	s.Party.Level = 2
	s.SeeInstructions(state.Action)
	h.put(t, s)

	h.send(t, "quick start")
	h.send(t, "onward")

	s = h.session(t)
	assert.Equal(t, 1, s.Floor)
	assert.Zero(t, s.Kills)
	assert.Equal(t, 1, s.Party.Level)
	assert.True(t, s.SeenInstructions[state.Action], "instructions stay seen across games")
}

func TestUnknownStateReturnsToTitle(t *testing.T) {
	h := newHarness(t)
	s := h.dungeon(t, "HAUNTED")
	h.put(t, s)

	resp := h.send(t, "hello")

	assert.Equal(t, "Welcome to Cordan.", resp.Text)
	assert.Equal(t, state.Title, h.session(t).State)
}

func TestContentErrorsAreRendered(t *testing.T) {
	h := newHarness(t)
	s := h.dungeon(t, state.Event)
	s.Floor = 9
	s.EventDeck = nil
	h.put(t, s)

	resp := h.send(t, "stealth")

	assert.Contains(t, resp.Text, "error.update")
	assert.Contains(t, resp.Text, "tier not found")
	assert.Equal(t, []string{"Restart"}, resp.Options)
	assert.Equal(t, state.Event, h.session(t).State)

	h.send(t, "restart")
	assert.Equal(t, state.Restarting, h.session(t).State)
}

func TestEnterErrorsAreRendered(t *testing.T) {
	h := newHarness(t)
	s := h.dungeon(t, state.Action)
	s.Floor = 9
	s.EventDeck = nil
	h.put(t, s)

	// scouting needs the event deck, which cannot be refilled on floor 9
	resp := h.send(t, "action.scout")

	assert.Contains(t, resp.Text, "error.enter_state")
	assert.Contains(t, resp.Text, "tier not found")
	assert.Equal(t, state.Scout, h.session(t).State)
}

type failingStore struct {
	*storage.MemoryStorage
	loadErr error
	saveErr error
}

func (f *failingStore) LoadSession(ctx context.Context, key storage.SessionKey) (*state.Session, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.MemoryStorage.LoadSession(ctx, key)
}

func (f *failingStore) SaveSession(ctx context.Context, key storage.SessionKey, s *state.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStorage.SaveSession(ctx, key, s)
}

func TestStorageErrors(t *testing.T) {
	catalog := contenttest.Catalog()
	key := storage.SessionKey{Platform: "test", UserID: "1"}
	boom := errors.New("boom")

	tests := []struct {
		name  string
		store *failingStore
	}{
		{"load", &failingStore{MemoryStorage: storage.NewMemoryStorage(), loadErr: boom}},
		{"save", &failingStore{MemoryStorage: storage.NewMemoryStorage(), saveErr: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(Options{Content: catalog, Messages: catalog, Sessions: tt.store})
			require.NoError(t, err)

			resp, err := e.Handle(context.Background(), key, "hello")

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, boom)
		})
	}
}

type stuckLocker struct{}

func (stuckLocker) Lock(ctx context.Context, key storage.SessionKey) (func(), error) {
	return nil, fmt.Errorf("%w: %s", storage.ErrLockTimeout, key)
}

func TestLockErrors(t *testing.T) {
	catalog := contenttest.Catalog()
	e, err := New(Options{Content: catalog, Messages: catalog, Sessions: storage.NewMemoryStorage(), Locker: stuckLocker{}})
	require.NoError(t, err)

	_, err = e.Handle(context.Background(), storage.SessionKey{Platform: "p", UserID: "u"}, "hello")
	assert.ErrorIs(t, err, storage.ErrLockTimeout)
}

func TestConcurrentMessagesOnOneSession(t *testing.T) {
	h := newHarness(t)
	s := h.dungeon(t, state.Action)
	s.Resources[content.Divine] = 100
	h.put(t, s)

	// a cure pays Divine and Time together, so a lost update would leave the
	// two totals apart
	var wg sync.WaitGroup
	for n := 0; n < 10; n++ {
		for _, text := range []string{"action.cure", "ok"} {
			text := text
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := h.engine.Handle(context.Background(), h.key, text); err != nil {
					t.Error(err)
				}
			}()
		}
	}
	wg.Wait()

	s = h.session(t)
	cures := 100 - s.ResourceCount(content.Divine)
	assert.Positive(t, cures)
	assert.Equal(t, cures, party.TimeLimit-s.ResourceCount(content.Time))
	assert.Contains(t, []state.StateID{state.Action, state.Cure}, s.State)
}

func TestConcurrentSessions(t *testing.T) {
	h := newHarness(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := storage.SessionKey{Platform: "test", UserID: fmt.Sprintf("user-%d", i)}
			for _, text := range []string{"hello", "quick start", "onward"} {
				if _, err := h.engine.Handle(context.Background(), key, text); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, h.store.Len())
	s, err := h.store.LoadSession(context.Background(), storage.SessionKey{Platform: "test", UserID: "user-7"})
	require.NoError(t, err)
	assert.Equal(t, state.Event, s.State)
}

func TestResponseRows(t *testing.T) {
	r := &Response{Options: []string{"1", "2", "3", "4", "5"}, Columns: 4}
	assert.Equal(t, [][]string{{"1", "2", "3", "4"}, {"5"}}, r.Rows())

	r = &Response{Options: []string{"a", "b"}}
	assert.Equal(t, [][]string{{"a"}, {"b"}}, r.Rows())

	assert.Nil(t, (&Response{}).Rows())
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"1", 0, true},
		{" 3 ", 2, true},
		{"2: (Equipment) Rope [+1 Mechanical]", 1, true},
		{"0", -1, true},
		{"rope", -1, false},
		{"", -1, false},
	}
	for _, tt := range tests {
		got, ok := parseIndex(tt.input)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func TestMessageKeysCoverActions(t *testing.T) {
	assert.Contains(t, MessageKeys, "action.boss_charge")
	assert.Contains(t, MessageKeys, "instructions.repeat_instructions_text")
	assert.Contains(t, MessageKeys, "victory.thanks")
}
