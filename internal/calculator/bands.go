package calculator

import (
	"math"

	"github.com/quidwise/taxengine/internal/rates"
)

// splitAcrossBands allocates a non-negative taxable amount across the
// ordered progressive bands, returning the tax charged in each band and the
// total. Bands beyond the amount contribute zero.
//
// This is the one band-walking primitive: the main calculation and the
// marginal simulation both go through it.
func splitAcrossBands(amount float64, bands []rates.Band) ([]float64, float64) {
	perBand := make([]float64, len(bands))
	remaining := amount
	var total float64

	for i, b := range bands {
		if remaining <= 0 {
			break
		}
		width := math.Inf(1)
		if b.Max != nil {
			width = *b.Max - b.Min
		}
		allocated := math.Min(remaining, width)
		perBand[i] = allocated * b.Rate
		total += perBand[i]
		remaining -= allocated
	}
	return perBand, total
}

// marginalBandRate returns the rate of the band the top pound of amount
// falls in, or zero when nothing is taxable. An amount sitting exactly on a
// band boundary belongs to the lower band: the boundary pound itself was
// taxed at the lower rate.
func marginalBandRate(amount float64, bands []rates.Band) float64 {
	if amount <= 0 {
		return 0
	}
	rate := 0.0
	for i, b := range bands {
		if amount > b.Min {
			rate = bands[i].Rate
		}
		if b.Max != nil && amount <= *b.Max {
			break
		}
	}
	return rate
}
