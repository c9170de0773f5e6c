package calculator

import (
	"math"

	"github.com/quidwise/taxengine/internal/rates"
)

// personalAllowance returns the tax-free allowance for the given
// post-pension-sacrifice gross: the full base allowance up to the taper
// threshold, then one pound lost per two pounds earned above it.
//
// Secondary-job (flat-rate code) handling lives with the callers: they skip
// this function entirely and use a zero allowance.
func personalAllowance(gross float64, it rates.IncomeTax) float64 {
	if gross <= it.TaperThreshold {
		return it.PersonalAllowance
	}
	reduction := (gross - it.TaperThreshold) / 2
	return math.Max(0, it.PersonalAllowance-reduction)
}
