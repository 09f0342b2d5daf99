package crypto

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/localpass/passgen/internal/model"
)

// zeroReader yields zero bytes and counts how many were read.
type zeroReader struct {
	read int
}

func (r *zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.read += len(p)
	return len(p), nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func onlyClasses(length int, lower, upper, digits, symbols bool) model.Settings {
	return model.Settings{
		Length:           length,
		AllowedSymbols:   model.DefaultAllowedSymbols,
		IncludeLowercase: lower,
		IncludeUppercase: upper,
		IncludeDigits:    digits,
		IncludeSymbols:   symbols,
		RequireLowercase: lower,
		RequireUppercase: upper,
		RequireDigits:    digits,
		RequireSymbols:   symbols,
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		settings model.Settings
		wantErr  error
	}{
		{
			name:     "default settings",
			settings: model.DefaultSettings(),
		},
		{
			name:     "lowercase only",
			settings: onlyClasses(12, true, false, false, false),
		},
		{
			name:     "uppercase only",
			settings: onlyClasses(16, false, true, false, false),
		},
		{
			name:     "digits only",
			settings: onlyClasses(16, false, false, true, false),
		},
		{
			name:     "symbols only",
			settings: onlyClasses(16, false, false, false, true),
		},
		{
			name:     "long password",
			settings: onlyClasses(512, true, true, true, true),
		},
		{
			name:     "no character types included",
			settings: onlyClasses(16, false, false, false, false),
			wantErr:  ErrNoCharacterClasses,
		},
		{
			name: "symbols included with empty symbol set",
			settings: func() model.Settings {
				s := onlyClasses(16, true, false, false, true)
				s.AllowedSymbols = ""
				return s
			}(),
			wantErr: ErrEmptySymbolSet,
		},
		{
			name:     "negative length",
			settings: onlyClasses(-1, true, false, false, false),
			wantErr:  ErrNegativeLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.settings)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("Generate() error = %v, want it to wrap ErrInvalidConfiguration", err)
				}
				if result != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if got := utf8.RuneCountInString(result); got != tt.settings.Length {
				t.Errorf("Generate() length = %d, want %d", got, tt.settings.Length)
			}
		})
	}
}

func TestGenerateEmptySymbolSetIgnoredWhenSymbolsExcluded(t *testing.T) {
	s := onlyClasses(10, true, false, false, false)
	s.AllowedSymbols = ""

	password, err := Generate(s)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if len(password) != 10 {
		t.Errorf("Generate() length = %d, want 10", len(password))
	}
}

func TestGenerateLowercaseOnly(t *testing.T) {
	password, err := Generate(onlyClasses(12, true, false, false, false))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if len(password) != 12 {
		t.Fatalf("Generate() length = %d, want 12", len(password))
	}
	for _, ch := range password {
		if ch < 'a' || ch > 'z' {
			t.Errorf("password %q contains non-lowercase character %q", password, ch)
		}
	}
}

func TestGenerateAllClassesShortPassword(t *testing.T) {
	s := onlyClasses(8, true, true, true, true)
	s.AllowedSymbols = "!@#"

	for i := 0; i < 100; i++ {
		password, err := Generate(s)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if len(password) != 8 {
			t.Fatalf("Generate() length = %d, want 8 (password %q)", len(password), password)
		}
		for _, set := range []string{lowercaseChars, uppercaseChars, digitChars, "!@#"} {
			if !strings.ContainsAny(password, set) {
				t.Errorf("password %q missing a character from %q", password, set)
			}
		}
	}
}

func TestGenerateContainsRequiredTypes(t *testing.T) {
	s := model.DefaultSettings()
	s.Length = 16

	// Run multiple times to reduce flakiness from randomness.
	for i := 0; i < 50; i++ {
		password, err := Generate(s)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}

		if !strings.ContainsAny(password, uppercaseChars) {
			t.Errorf("password %q missing uppercase character", password)
		}
		if !strings.ContainsAny(password, lowercaseChars) {
			t.Errorf("password %q missing lowercase character", password)
		}
		if !strings.ContainsAny(password, digitChars) {
			t.Errorf("password %q missing digit character", password)
		}
		if !strings.ContainsAny(password, model.DefaultAllowedSymbols) {
			t.Errorf("password %q missing symbol character", password)
		}
	}
}

func TestGenerateOnlyUsesIncludedClasses(t *testing.T) {
	tests := []struct {
		name     string
		settings model.Settings
		charset  string
	}{
		{
			name:     "letters",
			settings: onlyClasses(32, true, true, false, false),
			charset:  lowercaseChars + uppercaseChars,
		},
		{
			name:     "digits and symbols",
			settings: onlyClasses(32, false, false, true, true),
			charset:  digitChars + model.DefaultAllowedSymbols,
		},
		{
			name: "non-ascii symbols",
			settings: func() model.Settings {
				s := onlyClasses(32, false, false, false, true)
				s.AllowedSymbols = "€£¥"
				return s
			}(),
			charset: "€£¥",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := Generate(tt.settings)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if got := utf8.RuneCountInString(password); got != tt.settings.Length {
				t.Errorf("Generate() length = %d, want %d", got, tt.settings.Length)
			}
			for _, ch := range password {
				if !strings.ContainsRune(tt.charset, ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), tt.charset)
				}
			}
		})
	}
}

func TestGenerateRequireWithoutIncludeIsIgnored(t *testing.T) {
	s := onlyClasses(20, true, false, false, false)
	s.RequireUppercase = true
	s.RequireDigits = true

	for i := 0; i < 20; i++ {
		password, err := Generate(s)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if password == "" {
			t.Fatal("Generate() returned the exhaustion sentinel for a satisfiable request")
		}
		if strings.ContainsAny(password, uppercaseChars+digitChars) {
			t.Errorf("password %q contains characters from excluded classes", password)
		}
	}
}

func TestGenerateSingleCharacterRarelyExhausts(t *testing.T) {
	s := onlyClasses(1, true, true, false, false)
	s.RequireUppercase = false

	failures := 0
	for i := 0; i < 500; i++ {
		password, err := Generate(s)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if password == "" {
			failures++
			continue
		}
		if !strings.ContainsAny(password, lowercaseChars) {
			t.Errorf("password %q should be a single lowercase character", password)
		}
	}
	if failures > 0 {
		t.Errorf("Generate() exhausted %d of 500 single-character requests", failures)
	}
}

func TestGenerateTooShortForRequirements(t *testing.T) {
	password, err := Generate(onlyClasses(3, true, true, true, true))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "" {
		t.Errorf("Generate() = %q, want exhaustion sentinel", password)
	}
}

func TestGenerateOverlappingSymbolsShortPassword(t *testing.T) {
	// "a" is both a lowercase letter and the only symbol, so one character
	// can satisfy both requirements.
	source := &zeroReader{}
	g := NewGeneratorWithSource(source)

	s := onlyClasses(1, true, false, false, true)
	s.AllowedSymbols = "a"

	password, err := g.Generate(s)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "a" {
		t.Errorf("Generate() = %q, want %q", password, "a")
	}
	if source.read != 1 {
		t.Errorf("random bytes read = %d, want 1", source.read)
	}
}

func TestGenerateTooShortSkipsDrawing(t *testing.T) {
	source := &zeroReader{}
	g := NewGeneratorWithSource(source)

	password, err := g.Generate(onlyClasses(3, true, true, true, true))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "" {
		t.Errorf("Generate() = %q, want exhaustion sentinel", password)
	}
	if source.read != 0 {
		t.Errorf("random bytes read = %d, want 0", source.read)
	}
}

func TestDisjoint(t *testing.T) {
	tests := []struct {
		name string
		sets []string
		want bool
	}{
		{"none", nil, true},
		{"builtin classes", []string{lowercaseChars, uppercaseChars, digitChars, model.DefaultAllowedSymbols}, true},
		{"symbol is a letter", []string{lowercaseChars, "a!"}, false},
		{"symbol is a digit", []string{digitChars, "#7"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := disjoint(tt.sets); got != tt.want {
				t.Errorf("disjoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateZeroLength(t *testing.T) {
	password, err := Generate(onlyClasses(0, true, false, false, false))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "" {
		t.Errorf("Generate() = %q, want empty string", password)
	}
}

func TestGenerateRedrawsWholeCandidate(t *testing.T) {
	// A zero source always picks the first pool entry, so "aaaa" never holds
	// an uppercase letter and every attempt must be a fresh full draw.
	source := &zeroReader{}
	g := NewGeneratorWithSource(source)

	password, err := g.Generate(onlyClasses(4, true, true, false, false))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "" {
		t.Errorf("Generate() = %q, want exhaustion sentinel", password)
	}
	if want := MaxAttempts * 4; source.read != want {
		t.Errorf("random bytes read = %d, want %d", source.read, want)
	}
}

func TestGenerateStopsAtFirstAcceptedCandidate(t *testing.T) {
	source := &zeroReader{}
	g := NewGeneratorWithSource(source)

	s := onlyClasses(4, true, true, false, false)
	s.RequireUppercase = false

	password, err := g.Generate(s)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "aaaa" {
		t.Errorf("Generate() = %q, want %q", password, "aaaa")
	}
	if source.read != 4 {
		t.Errorf("random bytes read = %d, want 4", source.read)
	}
}

func TestGenerateSourceError(t *testing.T) {
	g := NewGeneratorWithSource(failingReader{})

	password, err := g.Generate(model.DefaultSettings())
	if err == nil {
		t.Fatal("Generate() expected error from failing random source")
	}
	if errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Generate() error = %v, should not be a configuration error", err)
	}
	if password != "" {
		t.Errorf("Generate() = %q, want empty string on error", password)
	}
}

func TestValidateRunsBeforeRandomness(t *testing.T) {
	source := &zeroReader{}
	g := NewGeneratorWithSource(source)

	if _, err := g.Generate(onlyClasses(8, false, false, false, false)); !errors.Is(err, ErrNoCharacterClasses) {
		t.Fatalf("Generate() error = %v, want %v", err, ErrNoCharacterClasses)
	}
	if source.read != 0 {
		t.Errorf("random bytes read = %d, want 0", source.read)
	}
}

func TestBuildPool(t *testing.T) {
	tests := []struct {
		name     string
		settings model.Settings
		want     string
	}{
		{
			name: "canonical order",
			settings: func() model.Settings {
				s := onlyClasses(8, true, true, true, true)
				s.AllowedSymbols = "!@#"
				return s
			}(),
			want: lowercaseChars + uppercaseChars + digitChars + "!@#",
		},
		{
			name:     "digits and uppercase",
			settings: onlyClasses(8, false, true, true, false),
			want:     uppercaseChars + digitChars,
		},
		{
			name: "repeated symbols collapse",
			settings: func() model.Settings {
				s := onlyClasses(8, false, false, false, true)
				s.AllowedSymbols = "!!@!#@"
				return s
			}(),
			want: "!@#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(buildPool(tt.settings)); got != tt.want {
				t.Errorf("buildPool() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	s := model.DefaultSettings()
	s.Length = 16
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := Generate(s)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}
