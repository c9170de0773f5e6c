package calculator

import (
	"github.com/quidwise/taxengine/internal/models"
	"github.com/quidwise/taxengine/internal/rates"
)

// marginalRate simulates the deduction rate on the next pound of income by
// re-running the allowance, band, NI and loan logic at gross+1. Reading the
// current breakdown's fields would get threshold crossings wrong: a filer
// sitting exactly on a boundary pays the next tier's rate on the increment,
// not the current one. Returns a fraction, not a percentage.
func marginalRate(gross float64, in models.TaxInput, t *rates.Table) float64 {
	nextGross := gross + 1

	nextTaxable := nextGross
	if !in.IsSecondaryJob {
		nextTaxable = nextGross - personalAllowance(nextGross, t.IncomeTax)
	}

	incomeTax := marginalBandRate(nextTaxable, t.IncomeTax.Bands)

	// Inside the taper zone every extra £2 also destroys £1 of allowance,
	// which gets taxed at the same band rate: the effective rate is the
	// band rate plus half of it again (40% becomes 60%). Secondary-job
	// filers have no allowance to lose, so the override never applies.
	// Both bounds come from the table, not statute constants.
	if !in.IsSecondaryJob &&
		nextGross > t.IncomeTax.TaperThreshold &&
		nextGross <= t.TaperExhaustedAt() {
		incomeTax += incomeTax / 2
	}

	ni := t.NationalInsurance.Class1
	var niRate float64
	switch {
	case nextGross > ni.UpperEarningsLimit:
		niRate = ni.RateAboveUEL
	case nextGross > ni.PrimaryThreshold:
		niRate = ni.RateBetween
	}

	var loanRate float64
	if lp, ok := t.StudentLoans[in.StudentLoanPlan]; ok && nextGross > lp.Threshold {
		loanRate += lp.Rate
	}
	if in.HasPostgraduateLoan {
		if lp, ok := t.StudentLoans[models.Postgraduate]; ok && nextGross > lp.Threshold {
			loanRate += lp.Rate
		}
	}

	return incomeTax + niRate + loanRate
}
