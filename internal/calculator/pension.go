package calculator

import (
	"math"

	"github.com/quidwise/taxengine/internal/rates"
)

// extraPensionRelief computes the relief-at-source top-up for a
// non-sacrifice contribution: the pension provider already reclaims basic
// rate, so the extra relief is the rate difference on whatever portion of
// the contribution falls into each higher band.
//
// The portion attributed to a band is clamped to [0, contribution], so the
// relief for any band never exceeds the contribution itself and exact
// band-boundary incomes cannot produce a negative portion.
func extraPensionRelief(contribution, taxableIncome float64, bands []rates.Band) float64 {
	if contribution <= 0 {
		return 0
	}
	var relief float64
	for i := 1; i < len(bands); i++ {
		boundary := bands[i].Min
		if taxableIncome <= boundary {
			break
		}
		portion := math.Min(contribution, taxableIncome-boundary)
		portion = math.Max(0, portion)
		relief += portion * (bands[i].Rate - bands[i-1].Rate)
	}
	return relief
}
