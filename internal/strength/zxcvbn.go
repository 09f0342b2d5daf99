package strength

import (
	"fmt"
	"math"

	"github.com/nbutton23/zxcvbn-go"
	"github.com/nbutton23/zxcvbn-go/match"

	"github.com/localpass/passgen/internal/model"
)

// maxCheckedLength limits how much of a password is handed to zxcvbn.
// Matching cost grows quickly with length; 64 random characters already
// score far beyond the top bucket.
const maxCheckedLength = 64

// Guesses per second assumed by each speed profile, indexed by model.SpeedProfile.
var guessRates = [model.SpeedProfileCount]float64{
	model.OfflineFastHashing: 1e10,
	model.OfflineSlowHashing: 1e4,
	model.OnlineNoThrottling: 10,
	model.OnlineThrottling:   100.0 / 3600,
}

const (
	suggestAddWords       = "Add another word or two. Uncommon words are better."
	suggestUseFewWords    = "Use a few words, avoid common phrases"
	suggestNoNeedSymbols  = "No need for symbols, digits, or uppercase letters"
	suggestLongerPattern  = "Use a longer keyboard pattern with more turns"
	suggestAvoidRepeats   = "Avoid repeated words and characters"
	suggestAvoidSequences = "Avoid sequences"
	suggestAvoidDates     = "Avoid dates and years that are associated with you"
	suggestCapitalization = "Capitalization doesn't help very much"
)

// ZxcvbnOracle evaluates passwords with zxcvbn-go.
type ZxcvbnOracle struct {
	// UserInputs are words specific to the user (names, site names) that
	// should count as easy to guess.
	UserInputs []string
}

// NewZxcvbnOracle creates a ZxcvbnOracle.
func NewZxcvbnOracle(userInputs ...string) *ZxcvbnOracle {
	return &ZxcvbnOracle{UserInputs: userInputs}
}

// Evaluate scores password. zxcvbn-go panics on some malformed input; such
// panics are returned as errors.
func (o *ZxcvbnOracle) Evaluate(password string) (result OracleResult, err error) {
	if password == "" {
		return emptyPasswordResult(), nil
	}

	checked := password
	if runes := []rune(password); len(runes) > maxCheckedLength {
		checked = string(runes[:maxCheckedLength])
	}

	defer func() {
		if r := recover(); r != nil {
			result = OracleResult{}
			err = fmt.Errorf("zxcvbn: %v", r)
		}
	}()

	m := zxcvbn.PasswordStrength(checked, o.UserInputs)

	guesses := 0.5 * math.Pow(2, m.Entropy)
	for profile, rate := range guessRates {
		result.CrackTimes[profile] = displayTime(guesses / rate)
	}
	result.Score = m.Score
	result.Warning, result.Suggestions = feedback(m.Score, m.MatchSequence)
	return result, nil
}

func emptyPasswordResult() OracleResult {
	var result OracleResult
	for i := range result.CrackTimes {
		result.CrackTimes[i] = displayTime(0)
	}
	result.Suggestions = []string{suggestUseFewWords, suggestNoNeedSymbols}
	return result
}

// displayTime renders a duration in seconds the way zxcvbn does,
// e.g. "less than a second", "3 hours", "centuries".
func displayTime(seconds float64) string {
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
		base, unit = seconds, "second"
	case seconds < hour:
		base, unit = seconds/minute, "minute"
	case seconds < day:
		base, unit = seconds/hour, "hour"
	case seconds < month:
		base, unit = seconds/day, "day"
	case seconds < year:
		base, unit = seconds/month, "month"
	case seconds < century:
		base, unit = seconds/year, "year"
	default:
		return "centuries"
	}

	n := int(math.Round(base))
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", n, unit)
}

// feedback explains the weakest part of a password. Strong passwords get none.
func feedback(score int, sequence []match.Match) (string, []string) {
	suggestions := []string{}
	if score > 2 {
		return "", suggestions
	}

	suggestions = append(suggestions, suggestAddWords)

	longest, ok := longestMatch(sequence)
	if !ok {
		return "", suggestions
	}

	var warning string
	switch longest.Pattern {
	case "dictionary":
		warning = dictionaryWarning(longest, len(sequence) == 1)
		if hasUppercase(longest.Token) {
			suggestions = append(suggestions, suggestCapitalization)
		}
	case "spatial":
		warning = "Short keyboard patterns are easy to guess"
		suggestions = append(suggestions, suggestLongerPattern)
	case "repeat":
		warning = `Repeats like "aaa" are easy to guess`
		suggestions = append(suggestions, suggestAvoidRepeats)
	case "sequence":
		warning = "Sequences like abc or 6543 are easy to guess"
		suggestions = append(suggestions, suggestAvoidSequences)
	case "date":
		warning = "Dates are often easy to guess"
		suggestions = append(suggestions, suggestAvoidDates)
	}
	return warning, suggestions
}

// longestMatch returns the longest non-bruteforce match.
func longestMatch(sequence []match.Match) (match.Match, bool) {
	var best match.Match
	found := false
	for _, m := range sequence {
		if m.Pattern == "" || m.Pattern == "bruteforce" {
			continue
		}
		if !found || len(m.Token) > len(best.Token) {
			best = m
			found = true
		}
	}
	return best, found
}

func dictionaryWarning(m match.Match, soleMatch bool) string {
	switch m.DictionaryName {
	case "Passwords":
		if soleMatch {
			return "This is a very common password"
		}
		return "This is similar to a commonly used password"
	case "English":
		if soleMatch {
			return "A word by itself is easy to guess"
		}
	case "Surname", "MaleNames", "FemaleNames":
		if soleMatch {
			return "Names and surnames by themselves are easy to guess"
		}
		return "Common names and surnames are easy to guess"
	case "user_inputs":
		return "Words related to you are easy to guess"
	}
	return ""
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
