package strength

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/localpass/passgen/internal/model"
)

var (
	ErrScoringUnavailable  = errors.New("password strength scoring unavailable")
	ErrInvalidSpeedProfile = errors.New("crack speed must be between 0 and 3")
)

var labels = [...]string{"Very Weak", "Weak", "Okay", "Strong", "Very Strong"}

// Label returns the display label for an ordinal score, or "" when out of range.
func Label(score int) string {
	if score < 0 || score >= len(labels) {
		return ""
	}
	return labels[score]
}

// Scorer turns oracle output into a StrengthResult.
type Scorer struct {
	oracle Oracle
}

// NewScorer creates a Scorer backed by oracle.
func NewScorer(oracle Oracle) *Scorer {
	return &Scorer{oracle: oracle}
}

// Score evaluates password and presents the crack time for the given speed profile.
func (s *Scorer) Score(password string, speed model.SpeedProfile) (model.StrengthResult, error) {
	if !speed.Valid() {
		return model.StrengthResult{}, ErrInvalidSpeedProfile
	}

	raw, err := s.oracle.Evaluate(password)
	if err != nil {
		return model.StrengthResult{}, fmt.Errorf("%w: %v", ErrScoringUnavailable, err)
	}

	label := Label(raw.Score)
	if label == "" {
		return model.StrengthResult{}, fmt.Errorf("%w: score %d out of range", ErrScoringUnavailable, raw.Score)
	}

	// Casers are not safe for concurrent use.
	title := cases.Title(language.English)

	return model.StrengthResult{
		Score:            raw.Score,
		Label:            label,
		CrackTimeDisplay: title.String(raw.CrackTimes[speed]),
		Suggestions:      raw.Suggestions,
		Warning:          raw.Warning,
	}, nil
}
