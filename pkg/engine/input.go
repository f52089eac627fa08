package engine

import (
	"strconv"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

// turn carries everything a state handler may touch while handling one
// message.
type turn struct {
	s       *state.Session
	content content.Store
	msgs    content.Messages
	rng     content.Rand
}

func (t *turn) msg(key string) string {
	return t.msgs.Message(key)
}

func (t *turn) random(category string) string {
	return t.msgs.RandomMessage(category, t.rng)
}

// is reports whether input is the text of the static message key, ignoring
// case.
func (t *turn) is(input, key string) bool {
	return content.Fold(input) == content.Fold(t.msg(key))
}

// instructions returns the state's instructions followed by a blank line the
// first time the state is shown, and "" afterwards.
func (t *turn) instructions(id state.StateID, key string) string {
	if !t.s.SeeInstructions(id) {
		return ""
	}
	return t.msg(key) + "\n\n"
}

func (t *turn) respond(text string, optionKeys ...string) *Response {
	options := make([]string, 0, len(optionKeys))
	for _, k := range optionKeys {
		options = append(options, t.msg(k))
	}
	return &Response{Text: text, Options: options}
}

// parseIndex reads a 1-based list position from player input. Anything after
// a colon is ignored, so a whole "2: Rope [+1 Mechanical]" option parses as 2.
// The result is 0-based.
func parseIndex(input string) (int, bool) {
	text, _, _ := strings.Cut(input, ":")
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return -1, false
	}
	return n - 1, true
}

func lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
