package service

import (
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/localpass/passgen/internal/crypto"
	"github.com/localpass/passgen/internal/model"
	"github.com/localpass/passgen/internal/strength"
)

// MaxLength caps the length a caller may ask for.
const MaxLength = 4096

var (
	ErrLengthTooLong  = errors.New("password length must be at most 4096")
	ErrLengthTooShort = errors.New("password length must be at least 1")
)

// GeneratorService generates passwords and scores them.
type GeneratorService struct {
	generator *crypto.Generator
	scorer    *strength.Scorer
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(generator *crypto.Generator, scorer *strength.Scorer) *GeneratorService {
	return &GeneratorService{generator: generator, scorer: scorer}
}

// Generate produces a password from the request, filling unset fields from the defaults.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	return s.GenerateWithSettings(req.Apply(model.DefaultSettings()))
}

// GenerateWithSettings produces and scores a password. When scoring fails the
// password is still returned, without a strength.
func (s *GeneratorService) GenerateWithSettings(settings model.Settings) (model.GenerateResponse, error) {
	settings = model.Normalize(settings)
	if err := validateSettings(settings); err != nil {
		return model.GenerateResponse{}, err
	}

	password, err := s.generator.Generate(settings)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	if password == "" {
		slog.Warn("password generation exhausted its attempts",
			"length", settings.Length,
			"required_classes", settings.RequiredCount(),
			"attempts", crypto.MaxAttempts,
		)
		return model.GenerateResponse{Exhausted: true}, nil
	}

	resp := model.GenerateResponse{
		Password: password,
		Length:   utf8.RuneCountInString(password),
	}

	result, err := s.scorer.Score(password, settings.CrackSpeed)
	if err != nil {
		slog.Warn("password strength unavailable", "error", err)
		return resp, nil
	}
	resp.Strength = &result

	return resp, nil
}

// Score rates an arbitrary password.
func (s *GeneratorService) Score(req model.ScoreRequest) (model.StrengthResult, error) {
	return s.scorer.Score(req.Password, req.Speed())
}

// validateSettings checks the limits enforced above the generator itself.
func validateSettings(settings model.Settings) error {
	if settings.Length > MaxLength {
		return ErrLengthTooLong
	}
	if !settings.CrackSpeed.Valid() {
		return strength.ErrInvalidSpeedProfile
	}
	if err := crypto.Validate(settings); err != nil {
		return err
	}
	if settings.Length == 0 {
		return ErrLengthTooShort
	}
	return nil
}

// IsValidationError reports whether err was caused by the caller's settings.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrInvalidConfiguration) ||
		errors.Is(err, ErrLengthTooLong) ||
		errors.Is(err, ErrLengthTooShort) ||
		errors.Is(err, strength.ErrInvalidSpeedProfile)
}
