package runner

import (
	"time"
)

// Special input values that trigger non-message actions
const (
	ForgetSessionInput = "FORGET_SESSION"
)

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name     string     `yaml:"name" json:"name"`
	Platform string     `yaml:"platform,omitempty" json:"platform,omitempty"` // defaults to "integration"
	Steps    []TestStep `yaml:"steps,omitempty" json:"steps,omitempty"`
	Cases    []string   `yaml:"cases,omitempty" json:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single player message and its expected outcomes
// Use input: "FORGET_SESSION" to delete the player's session
type TestStep struct {
	Name         string       `yaml:"name,omitempty" json:"name,omitempty"`
	Input        string       `yaml:"input" json:"input"`
	Expectations Expectations `yaml:"expect" json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	// Session properties - aligned with pkg/state/session.go
	State      *string        `yaml:"state,omitempty" json:"state,omitempty"`
	Floor      *int           `yaml:"floor,omitempty" json:"floor,omitempty"`
	Level      *int           `yaml:"level,omitempty" json:"level,omitempty"`
	PartySize  *int           `yaml:"party_size,omitempty" json:"party_size,omitempty"`
	Resources  map[string]int `yaml:"resources,omitempty" json:"resources,omitempty"`   // exact counts by resource name
	NoSession  bool           `yaml:"no_session,omitempty" json:"no_session,omitempty"` // session must not exist
	OptionsAre []string       `yaml:"options,omitempty" json:"options,omitempty"`

	// Response Analysis
	ResponseContains    []string `yaml:"response_contains,omitempty" json:"response_contains,omitempty"`
	ResponseNotContains []string `yaml:"response_not_contains,omitempty" json:"response_not_contains,omitempty"`
	ResponseRegex       string   `yaml:"response_regex,omitempty" json:"response_regex,omitempty"`
	OptionsContain      []string `yaml:"options_contain,omitempty" json:"options_contain,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName     string
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
	IsReset      bool // True if this was a FORGET_SESSION step
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	UserID   string // player used for this test
}
