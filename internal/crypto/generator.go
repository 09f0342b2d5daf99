package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/localpass/passgen/internal/model"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"

	// MaxAttempts bounds how many full candidates are drawn before giving up.
	MaxAttempts = 100
)

var (
	ErrInvalidConfiguration = errors.New("invalid generator configuration")
	ErrNoCharacterClasses   = fmt.Errorf("%w: at least one character type must be included", ErrInvalidConfiguration)
	ErrEmptySymbolSet       = fmt.Errorf("%w: allowed symbols cannot be empty when symbols are included", ErrInvalidConfiguration)
	ErrNegativeLength       = fmt.Errorf("%w: password length must not be negative", ErrInvalidConfiguration)
)

// Generator draws passwords from a random source.
type Generator struct {
	source      io.Reader
	maxAttempts int
}

// NewGenerator creates a Generator backed by crypto/rand.
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.Reader)
}

// NewGeneratorWithSource creates a Generator that reads randomness from source.
func NewGeneratorWithSource(source io.Reader) *Generator {
	return &Generator{source: source, maxAttempts: MaxAttempts}
}

var defaultGenerator = NewGenerator()

// Generate creates a random password using crypto/rand. See Generator.Generate.
func Generate(settings model.Settings) (string, error) {
	return defaultGenerator.Generate(settings)
}

// Validate rejects settings that cannot produce any password at all.
func Validate(settings model.Settings) error {
	if !settings.AnyIncluded() {
		return ErrNoCharacterClasses
	}
	if settings.IncludeSymbols && settings.AllowedSymbols == "" {
		return ErrEmptySymbolSet
	}
	if settings.Length < 0 {
		return ErrNegativeLength
	}
	return nil
}

// Generate builds a password of settings.Length characters, each drawn
// uniformly from the pool of included classes. A candidate missing any
// required class is discarded and a new one drawn from scratch.
//
// An empty password with a nil error means no candidate satisfied the
// requirements within MaxAttempts draws.
func (g *Generator) Generate(settings model.Settings) (string, error) {
	if err := Validate(settings); err != nil {
		return "", err
	}

	settings = model.Normalize(settings)
	pool := buildPool(settings)
	required := requiredSets(settings)

	// Nothing to draw, or too short to hold one character of each required
	// class. The second check only holds when no character counts for two
	// classes, e.g. a symbol set containing letters.
	if settings.Length == 0 || (settings.Length < len(required) && disjoint(required)) {
		return "", nil
	}

	candidate := make([]rune, settings.Length)
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		for i := range candidate {
			ch, err := g.randRune(pool)
			if err != nil {
				return "", fmt.Errorf("drawing random character: %w", err)
			}
			candidate[i] = ch
		}

		password := string(candidate)
		if satisfiesAll(password, required) {
			return password, nil
		}
	}

	return "", nil
}

// buildPool concatenates the included classes in the order
// lowercase, uppercase, digits, symbols.
func buildPool(settings model.Settings) []rune {
	var sb strings.Builder
	if settings.IncludeLowercase {
		sb.WriteString(lowercaseChars)
	}
	if settings.IncludeUppercase {
		sb.WriteString(uppercaseChars)
	}
	if settings.IncludeDigits {
		sb.WriteString(digitChars)
	}
	if settings.IncludeSymbols {
		sb.WriteString(uniqueRunes(settings.AllowedSymbols))
	}
	return []rune(sb.String())
}

// requiredSets returns the character set of every class that must appear.
// settings must already be normalized.
func requiredSets(settings model.Settings) []string {
	var sets []string
	if settings.RequireLowercase {
		sets = append(sets, lowercaseChars)
	}
	if settings.RequireUppercase {
		sets = append(sets, uppercaseChars)
	}
	if settings.RequireDigits {
		sets = append(sets, digitChars)
	}
	if settings.RequireSymbols {
		sets = append(sets, settings.AllowedSymbols)
	}
	return sets
}

func satisfiesAll(password string, sets []string) bool {
	for _, set := range sets {
		if !strings.ContainsAny(password, set) {
			return false
		}
	}
	return true
}

// disjoint reports whether no character appears in more than one of sets.
func disjoint(sets []string) bool {
	for i, set := range sets {
		for _, other := range sets[i+1:] {
			if strings.ContainsAny(set, other) {
				return false
			}
		}
	}
	return true
}

// uniqueRunes drops repeated characters, keeping first occurrences in order.
func uniqueRunes(s string) string {
	seen := make(map[rune]struct{}, len(s))
	var sb strings.Builder
	for _, r := range s {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		sb.WriteRune(r)
	}
	return sb.String()
}

// randRune picks a uniformly random rune from pool.
func (g *Generator) randRune(pool []rune) (rune, error) {
	n, err := rand.Int(g.source, big.NewInt(int64(len(pool))))
	if err != nil {
		return 0, err
	}
	return pool[n.Int64()], nil
}
