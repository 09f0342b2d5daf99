package model

// GenerateRequest represents a password generation request.
// Pointer fields allow distinguishing between missing (nil -> default) and an explicit value.
type GenerateRequest struct {
	Length         *int    `json:"length"`
	AllowedSymbols *string `json:"allowed_symbols"`

	IncludeLowercase *bool `json:"include_lowercase"`
	IncludeUppercase *bool `json:"include_uppercase"`
	IncludeDigits    *bool `json:"include_digits"`
	IncludeSymbols   *bool `json:"include_symbols"`

	RequireLowercase *bool `json:"require_lowercase"`
	RequireUppercase *bool `json:"require_uppercase"`
	RequireDigits    *bool `json:"require_digits"`
	RequireSymbols   *bool `json:"require_symbols"`

	CrackSpeed *int `json:"crack_speed"`
}

// Apply overlays the fields present in the request onto base.
func (r GenerateRequest) Apply(base Settings) Settings {
	s := base
	if r.Length != nil {
		s.Length = *r.Length
	}
	if r.AllowedSymbols != nil {
		s.AllowedSymbols = *r.AllowedSymbols
	}
	setBool(&s.IncludeLowercase, r.IncludeLowercase)
	setBool(&s.IncludeUppercase, r.IncludeUppercase)
	setBool(&s.IncludeDigits, r.IncludeDigits)
	setBool(&s.IncludeSymbols, r.IncludeSymbols)
	setBool(&s.RequireLowercase, r.RequireLowercase)
	setBool(&s.RequireUppercase, r.RequireUppercase)
	setBool(&s.RequireDigits, r.RequireDigits)
	setBool(&s.RequireSymbols, r.RequireSymbols)
	if r.CrackSpeed != nil {
		s.CrackSpeed = SpeedProfile(*r.CrackSpeed)
	}
	return s
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// GenerateResponse represents a password generation response.
// Exhausted is set when no password satisfying the requirements was found;
// Password is empty in that case.
type GenerateResponse struct {
	Password  string          `json:"password"`
	Length    int             `json:"length"`
	Exhausted bool            `json:"exhausted"`
	Strength  *StrengthResult `json:"strength,omitempty"`
}

// ScoreRequest represents a password scoring request.
// A missing CrackSpeed selects the default speed profile.
type ScoreRequest struct {
	Password   string `json:"password"`
	CrackSpeed *int   `json:"crack_speed"`
}

// Speed returns the requested speed profile, or the default one when unset.
func (r ScoreRequest) Speed() SpeedProfile {
	if r.CrackSpeed == nil {
		return DefaultSettings().CrackSpeed
	}
	return SpeedProfile(*r.CrackSpeed)
}

// SettingsResponse is returned after the stored settings change or are regenerated.
type SettingsResponse struct {
	Settings Settings         `json:"settings"`
	Result   GenerateResponse `json:"result"`
}
