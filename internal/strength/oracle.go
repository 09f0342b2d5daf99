// Package strength estimates how hard a password is to crack.
//
// The estimate itself comes from an Oracle. Scorer adapts an oracle's raw
// output into a display-ready model.StrengthResult for one chosen attacker
// speed profile.
package strength

import "github.com/localpass/passgen/internal/model"

// Oracle evaluates a password. Implementations must be safe for concurrent use.
type Oracle interface {
	Evaluate(password string) (OracleResult, error)
}

// OracleResult is the raw outcome of evaluating one password.
type OracleResult struct {
	// Score is an ordinal from 0 (too guessable) to 4 (very unguessable).
	Score int
	// CrackTimes holds one human-readable estimate per model.SpeedProfile,
	// indexed by profile.
	CrackTimes [model.SpeedProfileCount]string
	// Suggestions are free-text hints for making the password stronger.
	Suggestions []string
	// Warning explains the main weakness found, if any.
	Warning string
}

// OracleFunc adapts an ordinary function to the Oracle interface.
type OracleFunc func(password string) (OracleResult, error)

func (f OracleFunc) Evaluate(password string) (OracleResult, error) {
	return f(password)
}
