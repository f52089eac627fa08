// Package engine runs the Heroes of Cordan game state machine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
	"github.com/Codelizard/HeroesOfCordan/pkg/storage"
)

const (
	startCommand   = "/start"
	restartCommand = "/restart"
)

// ErrUnknownLoot is returned when a defeated monster carries a loot type the
// engine cannot award.
var ErrUnknownLoot = errors.New("unknown loot type")

// Options configures an Engine. Content, Messages and Sessions are required.
type Options struct {
	Content  content.Store
	Messages content.Messages
	Sessions storage.SessionStore

	// Locker defaults to an in-process keyed mutex.
	Locker storage.Locker
	// NewRand returns the random source for one message. Defaults to a
	// time-seeded math/rand source.
	NewRand func() content.Rand
	Logger  *slog.Logger
}

// Engine turns player messages into game responses, one session at a time.
type Engine struct {
	content  content.Store
	messages content.Messages
	sessions storage.SessionStore
	locker   storage.Locker
	newRand  func() content.Rand
	logger   *slog.Logger
}

func New(opts Options) (*Engine, error) {
	if opts.Content == nil {
		return nil, errors.New("engine: content store is required")
	}
	if opts.Messages == nil {
		return nil, errors.New("engine: messages are required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("engine: session store is required")
	}
	e := &Engine{
		content:  opts.Content,
		messages: opts.Messages,
		sessions: opts.Sessions,
		locker:   opts.Locker,
		newRand:  opts.NewRand,
		logger:   opts.Logger,
	}
	if e.locker == nil {
		e.locker = storage.NewMemoryLocker()
	}
	if e.newRand == nil {
		e.newRand = func() content.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// Handle runs one message through the state machine: the current state
// handles the input, then the resulting state renders the response. The
// session is saved even when a handler fails part way. Game errors become
// response text; the returned error is reserved for storage and locking.
func (e *Engine) Handle(ctx context.Context, key storage.SessionKey, text string) (*Response, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("invalid session key %q", key)
	}

	unlock, err := e.locker.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session %s: %w", key, err)
	}
	defer unlock()

	s, err := e.sessions.LoadSession(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", key, err)
	}

	t := &turn{
		content: e.content,
		msgs:    e.messages,
		rng:     e.newRand(),
	}
	input := content.Fold(text)

	var resp *Response
	switch {
	case s == nil || input == startCommand:
		s = state.NewSession(state.Title)
		e.logger.Info("Started new session", "session", key.String(), "id", s.ID)
	case input == restartCommand || t.is(input, "global.restart"):
		s = state.NewSession(state.Restarting)
		e.logger.Info("Restarted session", "session", key.String(), "id", s.ID)
	default:
		t.s = s
		resp = e.update(t, key, text)
	}
	t.s = s
	if resp == nil {
		resp = e.enter(t, key)
	}

	s.Touch()
	if err := e.sessions.SaveSession(ctx, key, s); err != nil {
		return nil, fmt.Errorf("failed to save session %s: %w", key, err)
	}
	return resp, nil
}

// update runs the current state's input handler. It returns a response only
// when the handler failed.
func (e *Engine) update(t *turn, key storage.SessionKey, input string) *Response {
	from := t.s.State
	h, ok := handlers[from]
	if !ok {
		e.logger.Error("Session in unknown state, returning to title", "session", key.String(), "state", from)
		t.s.State = state.Title
		return nil
	}

	next, err := h.update(t, input)
	if next != "" {
		t.s.State = next
	}
	if err != nil {
		e.logger.Error("Failed to update state",
			"session", key.String(),
			"state", from,
			"error", err)
		return t.failure("error.update", err)
	}
	if next != from {
		e.logger.Debug("State transition", "session", key.String(), "from", from, "to", next)
	}
	return nil
}

// enter renders the current state. A handler may move the session on while
// rendering; the move takes effect on the next message.
func (e *Engine) enter(t *turn, key storage.SessionKey) *Response {
	current := t.s.State
	h, ok := handlers[current]
	if !ok {
		return t.failure("error.enter_state", fmt.Errorf("unknown state %q", current))
	}
	resp, err := h.enter(t)
	if err != nil {
		e.logger.Error("Failed to enter state",
			"session", key.String(),
			"state", current,
			"error", err)
		return t.failure("error.enter_state", err)
	}
	return resp
}

func (t *turn) failure(key string, err error) *Response {
	return t.respond(t.msg(key)+err.Error(), "global.restart")
}
