package scoring

import (
	"math"
	"strconv"

	"github.com/nbutton23/zxcvbn-go"
	zxscoring "github.com/nbutton23/zxcvbn-go/scoring"
)

// Zxcvbn scores passwords with the zxcvbn pattern matcher.
type Zxcvbn struct {
	strength func(password string, userInputs []string) zxscoring.MinEntropyMatch
}

func NewZxcvbn() *Zxcvbn {
	return &Zxcvbn{strength: zxcvbn.PasswordStrength}
}

func (z *Zxcvbn) Score(password string, userInputs []string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Degraded()
		}
	}()

	m := z.strength(password, userInputs)
	if math.IsNaN(m.Entropy) || m.Entropy < 0 {
		return Degraded()
	}

	matches := make([]patternMatch, 0, len(m.MatchSequence))
	for _, pm := range m.MatchSequence {
		matches = append(matches, patternMatch{
			Pattern:    pm.Pattern,
			Token:      pm.Token,
			Dictionary: pm.DictionaryName,
		})
	}

	score := clampScore(m.Score)
	return Result{
		Score:      score,
		CrackTimes: crackTimes(math.Pow(2, m.Entropy)),
		Feedback:   feedbackFor(score, matches),
	}
}

func crackTimes(guesses float64) map[string]string {
	out := make(map[string]string, len(scenarioRates))
	for scenario, rate := range scenarioRates {
		out[scenario] = DisplayTime(guesses / rate)
	}
	return out
}

// DisplayTime renders a number of seconds the way zxcvbn does: "less than a
// second", "3 minutes", "1 year", "centuries".
func DisplayTime(seconds float64) string {
	const (
		minute  = 60.0
		hour    = minute * 60
		day     = hour * 24
		month   = day * 31
		year    = month * 12
		century = year * 100
	)

	var base float64
	var unit string
	switch {
	case seconds < 1:
		return "less than a second"
	case seconds < minute:
		base, unit = math.Round(seconds), "second"
	case seconds < hour:
		base, unit = math.Round(seconds/minute), "minute"
	case seconds < day:
		base, unit = math.Round(seconds/hour), "hour"
	case seconds < month:
		base, unit = math.Round(seconds/day), "day"
	case seconds < year:
		base, unit = math.Round(seconds/month), "month"
	case seconds < century:
		base, unit = math.Round(seconds/year), "year"
	default:
		return "centuries"
	}

	n := int64(base)
	if n != 1 {
		unit += "s"
	}
	return strconv.FormatInt(n, 10) + " " + unit
}
