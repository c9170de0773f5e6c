package calculator

import (
	"math"

	"github.com/quidwise/taxengine/internal/rates"
)

// classOneNI computes employee Class 1 National Insurance on gross pay.
// NI has no personal allowance concept: the input is the
// post-pension-sacrifice gross, not post-allowance taxable income.
func classOneNI(gross float64, c rates.Class1) float64 {
	if gross <= c.PrimaryThreshold {
		return 0
	}
	main := (math.Min(gross, c.UpperEarningsLimit) - c.PrimaryThreshold) * c.RateBetween
	if gross <= c.UpperEarningsLimit {
		return main
	}
	return main + (gross-c.UpperEarningsLimit)*c.RateAboveUEL
}
