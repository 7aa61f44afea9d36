// Package scoring estimates password strength. Scorers never fail: backend
// problems produce a degraded Result instead of an error.
package scoring

const (
	ScenarioOnlineThrottled   = "online_throttling_100_per_hour"
	ScenarioOnlineUnthrottled = "online_no_throttling_10_per_second"
	ScenarioOfflineSlowHash   = "offline_slow_hashing_1e4_per_second"
	ScenarioOfflineFastHash   = "offline_fast_hashing_1e10_per_second"
)

// Scenarios lists the crack-time scenarios in display order.
var Scenarios = []string{
	ScenarioOnlineThrottled,
	ScenarioOnlineUnthrottled,
	ScenarioOfflineSlowHash,
	ScenarioOfflineFastHash,
}

// guessesPerSecond per scenario.
var scenarioRates = map[string]float64{
	ScenarioOnlineThrottled:   100.0 / 3600.0,
	ScenarioOnlineUnthrottled: 10,
	ScenarioOfflineSlowHash:   1e4,
	ScenarioOfflineFastHash:   1e10,
}

const degradedWarning = "scoring backend error"

type Feedback struct {
	// Warning is empty when there is nothing to warn about.
	Warning     string   `json:"warning,omitempty"`
	Suggestions []string `json:"suggestions"`
}

type Result struct {
	// Score ranges from 0 (weakest) to 4 (strongest).
	Score int `json:"score"`
	// CrackTimes maps a scenario label to a human readable duration.
	CrackTimes map[string]string `json:"crack_times_display"`
	Feedback   Feedback          `json:"feedback"`
	Degraded   bool              `json:"degraded,omitempty"`
}

// Scorer rates a candidate password. userInputs are context words (names,
// dates, ...) that should count as easy to guess.
type Scorer interface {
	Score(password string, userInputs []string) Result
}

// Degraded is the result reported when the backend fails.
func Degraded() Result {
	return Result{
		Score:      0,
		CrackTimes: map[string]string{},
		Feedback: Feedback{
			Warning:     degradedWarning,
			Suggestions: []string{},
		},
		Degraded: true,
	}
}

var scoreLabels = []string{"Very Weak", "Weak", "Fair", "Good", "Strong"}

// Label names a score, clamping out-of-range values.
func Label(score int) string {
	return scoreLabels[clampScore(score)]
}

func clampScore(score int) int {
	return max(0, min(score, len(scoreLabels)-1))
}
