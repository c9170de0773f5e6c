package calculator

import (
	"errors"

	"github.com/quidwise/taxengine/internal/models"
)

// Validation errors. These are the only per-calculation failures: they are
// raised before any arithmetic runs, and a rejected input produces no
// breakdown at all.
var (
	ErrNegativeSalary        = errors.New("gross salary cannot be negative")
	ErrNegativeBonus         = errors.New("bonus cannot be negative")
	ErrInvalidPensionPercent = errors.New("pension contribution must be between 0 and 100 percent")
)

func validateInput(in models.TaxInput) error {
	if in.GrossSalary < 0 {
		return ErrNegativeSalary
	}
	if in.Bonus < 0 {
		return ErrNegativeBonus
	}
	if in.PensionContributionPercent < 0 || in.PensionContributionPercent > 100 {
		return ErrInvalidPensionPercent
	}
	return nil
}
