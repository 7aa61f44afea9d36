package analyze

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gigurra/pwforge/cmd/common/config"
	"github.com/gigurra/pwforge/cmd/common/scoring"
)

type fakeScorer struct {
	result     scoring.Result
	password   string
	userInputs []string
}

func (f *fakeScorer) Score(password string, userInputs []string) scoring.Result {
	f.password = password
	f.userInputs = userInputs
	return f.result
}

func withScorer(t *testing.T, res scoring.Result) *fakeScorer {
	t.Helper()
	fake := &fakeScorer{result: res}
	old := newScorer
	newScorer = func() scoring.Scorer { return fake }
	t.Cleanup(func() { newScorer = old })
	return fake
}

var weakResult = scoring.Result{
	Score: 1,
	CrackTimes: map[string]string{
		scoring.ScenarioOnlineThrottled:   "2 days",
		scoring.ScenarioOnlineUnthrottled: "3 minutes",
		scoring.ScenarioOfflineSlowHash:   "less than a second",
		scoring.ScenarioOfflineFastHash:   "less than a second",
	},
	Feedback: scoring.Feedback{
		Warning:     "This is similar to one of your personal details.",
		Suggestions: []string{"Add another word or two. Uncommon words are better."},
	},
}

func TestRun_Positional(t *testing.T) {
	fake := withScorer(t, weakResult)
	var stdout, stderr bytes.Buffer

	exitCode := Run(&Params{Password: "Sam2024", Context: []string{"sam, rex"}}, strings.NewReader(""), &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("exit code = %d, stderr = %q", exitCode, stderr.String())
	}

	if fake.password != "Sam2024" {
		t.Errorf("scored %q, want Sam2024", fake.password)
	}
	if !slices.Equal(fake.userInputs, []string{"sam", "rex"}) {
		t.Errorf("userInputs = %q", fake.userInputs)
	}

	out := stdout.String()
	for _, want := range []string{
		"Score (0=weak .. 4=strong): 1",
		"Weak",
		scoring.ScenarioOnlineThrottled,
		"2 days",
		"Warning: This is similar to one of your personal details.",
		"  - Add another word or two.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, scoring.ScenarioOnlineThrottled) > strings.Index(out, scoring.ScenarioOfflineFastHash) {
		t.Error("scenarios should be listed in order")
	}
}

func TestRun_PromptsForPassword(t *testing.T) {
	fake := withScorer(t, weakResult)
	var stdout, stderr bytes.Buffer

	exitCode := Run(&Params{}, strings.NewReader("hunter2\n"), &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("exit code = %d, stderr = %q", exitCode, stderr.String())
	}
	if fake.password != "hunter2" {
		t.Errorf("scored %q, want hunter2", fake.password)
	}
	if !strings.Contains(stderr.String(), "Password: ") {
		t.Errorf("prompt should go to stderr, got %q", stderr.String())
	}
}

func TestRun_EmptyPassword(t *testing.T) {
	withScorer(t, weakResult)
	var stdout, stderr bytes.Buffer

	exitCode := Run(&Params{}, strings.NewReader("\n"), &stdout, &stderr)
	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
	if !strings.Contains(stderr.String(), "pwforge analyze: password cannot be empty") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_Degraded(t *testing.T) {
	withScorer(t, scoring.Degraded())
	var stdout, stderr bytes.Buffer

	exitCode := Run(&Params{Password: "x"}, strings.NewReader(""), &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("a degraded score is not a failure, exit code = %d", exitCode)
	}
	if !strings.Contains(stdout.String(), "Warning: scoring backend error") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "Estimated crack time") {
		t.Error("no crack-time table should be printed without crack times")
	}
	if !strings.Contains(stderr.String(), "degraded") {
		t.Errorf("degradation should be logged, stderr = %q", stderr.String())
	}
}

func TestRun_JSON(t *testing.T) {
	withScorer(t, weakResult)
	var stdout, stderr bytes.Buffer

	exitCode := Run(&Params{Password: "x", JSON: true}, strings.NewReader(""), &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("exit code = %d", exitCode)
	}

	var decoded map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if decoded["score"] != float64(1) || decoded["label"] != "Weak" {
		t.Errorf("decoded = %v", decoded)
	}
	if _, ok := decoded["crack_times_display"].(map[string]any); !ok {
		t.Errorf("crack_times_display missing: %v", decoded)
	}
	if _, ok := decoded["suggestion"]; ok {
		t.Error("suggestion should be omitted unless requested")
	}
}

func TestRun_SuggestAndCopy(t *testing.T) {
	withScorer(t, weakResult)

	oldSuggest, oldClip := suggestPassword, clipboardWriteAll
	t.Cleanup(func() { suggestPassword, clipboardWriteAll = oldSuggest, oldClip })
	suggestPassword = func(length int) (string, error) { return "Zq9!vT-suggested", nil }
	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}

	var stdout, stderr bytes.Buffer
	exitCode := Run(&Params{Password: "x", Copy: true, Length: 20}, strings.NewReader(""), &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("exit code = %d, stderr = %q", exitCode, stderr.String())
	}
	if copied != "Zq9!vT-suggested" {
		t.Errorf("copied %q", copied)
	}
	if !strings.Contains(stdout.String(), "Suggested password: Zq9!vT-suggested") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_ClipboardFailure(t *testing.T) {
	withScorer(t, weakResult)
	oldClip := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = oldClip })
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }

	var stdout, stderr bytes.Buffer
	if exitCode := Run(&Params{Password: "x", Copy: true}, strings.NewReader(""), &stdout, &stderr); exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
	if !strings.Contains(stderr.String(), "failed to write to clipboard") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_Profile(t *testing.T) {
	fake := withScorer(t, weakResult)
	oldLoad := loadConfig
	t.Cleanup(func() { loadConfig = oldLoad })
	loadConfig = func() (*config.Config, error) {
		cfg := config.DefaultConfig()
		cfg.Profile.Pets = []string{"Rex"}
		return cfg, nil
	}

	var stdout, stderr bytes.Buffer
	if exitCode := Run(&Params{Password: "x", Context: []string{"sam"}, Profile: true}, strings.NewReader(""), &stdout, &stderr); exitCode != 0 {
		t.Fatalf("exit code = %d", exitCode)
	}
	if !slices.Equal(fake.userInputs, []string{"sam", "Rex"}) {
		t.Errorf("userInputs = %q", fake.userInputs)
	}
}

func TestGenerateSuggestion(t *testing.T) {
	pw, err := generateSuggestion(24)
	if err != nil {
		t.Fatalf("generateSuggestion failed: %v", err)
	}
	if len([]rune(pw)) != 24 {
		t.Errorf("len = %d, want 24", len([]rune(pw)))
	}

	short, err := generateSuggestion(3)
	if err != nil {
		t.Fatalf("generateSuggestion failed: %v", err)
	}
	if len([]rune(short)) != 8 {
		t.Errorf("short suggestions are raised to 8 characters, got %d", len([]rune(short)))
	}

	if scored := scoring.NewZxcvbn().Score(pw, nil); scored.Score < 3 {
		t.Errorf("suggestion %q scored %d", pw, scored.Score)
	}
}
