package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

const defaultPlatform = "integration"

// Runner executes integration tests against a running Heroes of Cordan API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 30 * time.Second},
		Timeout:           10 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a YAML or JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(data, &suite); err != nil {
			return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
		}
		return suite, nil
	}
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse YAML in %s: %w", filename, err)
	}
	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite plays the suite's steps as a brand new player. The player's
// session is deleted afterwards.
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
		UserID:  uuid.New().String(),
	}

	platform := suite.Platform
	if platform == "" {
		platform = defaultPlatform
	}
	defer func() {
		if err := DeleteSession(context.Background(), r.Client, r.BaseURL, platform, result.UserID); err != nil {
			r.Logger("    cleanup failed: %v", err)
		}
	}()

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, platform, result.UserID, step)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// runStep sends one message, or forgets the session for FORGET_SESSION, and
// checks the step's expectations.
func (r *Runner) runStep(ctx context.Context, platform, userID string, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}

	stepCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var reply *MessageResponse
	if step.Input == ForgetSessionInput {
		if err := DeleteSession(stepCtx, r.Client, r.BaseURL, platform, userID); err != nil {
			result.Error = fmt.Errorf("failed to forget session: %w", err)
			result.Duration = time.Since(start)
			return result
		}
		result.IsReset = true
		result.ResponseText = "[SESSION FORGOTTEN]"
	} else {
		var err error
		reply, err = PostMessage(stepCtx, r.Client, r.BaseURL, platform, userID, step.Input)
		if err != nil {
			result.Error = fmt.Errorf("failed to post message: %w", err)
			result.Duration = time.Since(start)
			return result
		}
		result.ResponseText = reply.Text
	}

	session, err := GetSession(stepCtx, r.Client, r.BaseURL, platform, userID)
	if err != nil {
		result.Error = fmt.Errorf("failed to get session after step: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	if err := checkExpectations(step.Expectations, session, reply); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// checkExpectations validates the step expectations against the stored
// session and the reply. reply is nil for steps that sent no message.
func checkExpectations(exp Expectations, s *state.Session, reply *MessageResponse) error {
	if exp.NoSession {
		if s != nil {
			return fmt.Errorf("expected no session, found one in state %s", s.State)
		}
		return nil
	}

	if exp.State != nil || exp.Floor != nil || exp.Level != nil || exp.PartySize != nil || len(exp.Resources) > 0 {
		if s == nil {
			return fmt.Errorf("expected a session, found none")
		}
	}

	if exp.State != nil && string(s.State) != *exp.State {
		return fmt.Errorf("expected state %s, got %s", *exp.State, s.State)
	}

	if exp.Floor != nil && s.Floor != *exp.Floor {
		return fmt.Errorf("expected floor %d, got %d", *exp.Floor, s.Floor)
	}

	if exp.Level != nil && s.Party.Level != *exp.Level {
		return fmt.Errorf("expected party level %d, got %d", *exp.Level, s.Party.Level)
	}

	if exp.PartySize != nil && len(s.Party.Heroes) != *exp.PartySize {
		return fmt.Errorf("expected %d heroes, got %d", *exp.PartySize, len(s.Party.Heroes))
	}

	for name, want := range exp.Resources {
		r, ok := content.ParseResourceType(name)
		if !ok {
			return fmt.Errorf("unknown resource %q in expectations", name)
		}
		if got := s.ResourceCount(r); got != want {
			return fmt.Errorf("expected %s to be %d, got %d", r.Name(), want, got)
		}
	}

	if reply == nil {
		return nil
	}

	if exp.OptionsAre != nil && !slices.Equal(exp.OptionsAre, reply.Options) {
		return fmt.Errorf("expected options %v, got %v", exp.OptionsAre, reply.Options)
	}

	for _, want := range exp.OptionsContain {
		if !slices.Contains(reply.Options, want) {
			return fmt.Errorf("expected options to contain '%s', got %v", want, reply.Options)
		}
	}

	lowerResponse := strings.ToLower(reply.Text)
	for _, expectedText := range exp.ResponseContains {
		if !strings.Contains(lowerResponse, strings.ToLower(expectedText)) {
			return fmt.Errorf("expected response to contain '%s', but it didn't", expectedText)
		}
	}

	for _, unexpectedText := range exp.ResponseNotContains {
		if strings.Contains(lowerResponse, strings.ToLower(unexpectedText)) {
			return fmt.Errorf("expected response to NOT contain '%s', but it did", unexpectedText)
		}
	}

	if exp.ResponseRegex != "" {
		matched, err := regexp.MatchString(exp.ResponseRegex, reply.Text)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("response didn't match regex pattern: %s", exp.ResponseRegex)
		}
	}

	return nil
}
