package model

// DefaultAllowedSymbols is the symbol set used when none has been chosen.
const DefaultAllowedSymbols = "!@#$%^&*()_-+=<>?"

// DefaultLength is the password length used when none has been chosen.
const DefaultLength = 12

// SpeedProfile selects which attacker throughput is assumed when presenting
// an estimated crack time.
type SpeedProfile int

const (
	OfflineFastHashing SpeedProfile = iota // 1e10 guesses per second
	OfflineSlowHashing                     // 1e4 guesses per second
	OnlineNoThrottling                     // 10 guesses per second
	OnlineThrottling                       // 100 guesses per hour

	// SpeedProfileCount is the number of known speed profiles.
	SpeedProfileCount = 4
)

// Valid reports whether p names a known speed profile.
func (p SpeedProfile) Valid() bool {
	return p >= 0 && p < SpeedProfileCount
}

func (p SpeedProfile) String() string {
	switch p {
	case OfflineFastHashing:
		return "offline-fast"
	case OfflineSlowHashing:
		return "offline-slow"
	case OnlineNoThrottling:
		return "online-unthrottled"
	case OnlineThrottling:
		return "online-throttled"
	default:
		return "unknown"
	}
}

// Settings holds the password generation preferences.
// Require flags only take effect for classes that are also included; see Normalize.
type Settings struct {
	Length         int    `json:"length"`
	AllowedSymbols string `json:"allowed_symbols"`

	IncludeLowercase bool `json:"include_lowercase"`
	IncludeUppercase bool `json:"include_uppercase"`
	IncludeDigits    bool `json:"include_digits"`
	IncludeSymbols   bool `json:"include_symbols"`

	RequireLowercase bool `json:"require_lowercase"`
	RequireUppercase bool `json:"require_uppercase"`
	RequireDigits    bool `json:"require_digits"`
	RequireSymbols   bool `json:"require_symbols"`

	CrackSpeed SpeedProfile `json:"crack_speed"`
}

// DefaultSettings returns 12 characters with every class included and required.
func DefaultSettings() Settings {
	return Settings{
		Length:           DefaultLength,
		AllowedSymbols:   DefaultAllowedSymbols,
		IncludeLowercase: true,
		IncludeUppercase: true,
		IncludeDigits:    true,
		IncludeSymbols:   true,
		RequireLowercase: true,
		RequireUppercase: true,
		RequireDigits:    true,
		RequireSymbols:   true,
		CrackSpeed:       OfflineSlowHashing,
	}
}

// Normalize clears any require flag whose class is not included, so a
// requirement can never ask for a class that contributes nothing to the pool.
func Normalize(s Settings) Settings {
	s.RequireLowercase = s.RequireLowercase && s.IncludeLowercase
	s.RequireUppercase = s.RequireUppercase && s.IncludeUppercase
	s.RequireDigits = s.RequireDigits && s.IncludeDigits
	s.RequireSymbols = s.RequireSymbols && s.IncludeSymbols
	return s
}

// AnyIncluded reports whether at least one character class is included.
func (s Settings) AnyIncluded() bool {
	return s.IncludeLowercase || s.IncludeUppercase || s.IncludeDigits || s.IncludeSymbols
}

// RequiredCount returns the number of classes that must appear, after normalization.
func (s Settings) RequiredCount() int {
	n := Normalize(s)
	count := 0
	for _, req := range []bool{n.RequireLowercase, n.RequireUppercase, n.RequireDigits, n.RequireSymbols} {
		if req {
			count++
		}
	}
	return count
}

// StrengthResult is the display-ready outcome of scoring one password.
type StrengthResult struct {
	Score            int      `json:"score"`
	Label            string   `json:"label"`
	CrackTimeDisplay string   `json:"crack_time_display"`
	Suggestions      []string `json:"suggestions"`
	Warning          string   `json:"warning,omitempty"`
}
