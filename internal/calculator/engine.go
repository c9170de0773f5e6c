// Package calculator implements the deterministic UK personal-tax engine:
// income tax across progressive bands, Class 1 National Insurance, student
// and postgraduate loan repayments, pension treatment, and a forward-looking
// marginal rate.
//
// Every function here is pure arithmetic over an immutable rate table; a
// calculation holds no state, performs no I/O, and is safe to run from any
// number of goroutines concurrently.
package calculator

import (
	"math"

	"github.com/quidwise/taxengine/internal/models"
	"github.com/quidwise/taxengine/internal/rates"
)

// Engine computes tax breakdowns against one rate-table snapshot.
// The table is an explicit constructor dependency so tests can run
// synthetic tables and callers can hot-swap tax years by building a new
// Engine.
type Engine struct {
	table *rates.Table
}

// New creates an Engine over the given validated rate table.
func New(table *rates.Table) *Engine {
	return &Engine{table: table}
}

// Table returns the rate-table snapshot this engine computes against.
func (e *Engine) Table() *rates.Table {
	return e.table
}

// Calculate produces the full breakdown for one income profile.
//
// Ordering matters and is fixed: pension sacrifice reduces the gross before
// the allowance is derived; the allowance taper sees the post-pension
// gross; NI and loans run on the post-pension gross while income tax runs
// on post-allowance taxable income; the marginal rate is simulated at
// gross+1 last. Invalid input returns one of the Err* sentinels and no
// breakdown.
func (e *Engine) Calculate(in models.TaxInput) (*models.TaxBreakdown, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	t := e.table

	gross := in.GrossSalary + in.Bonus
	pension := gross * in.PensionContributionPercent / 100

	taxableGross := gross
	if in.SalarySacrificePension {
		taxableGross -= pension
	}

	var allowance float64
	if !in.IsSecondaryJob {
		allowance = personalAllowance(taxableGross, t.IncomeTax)
	}
	taxableIncome := math.Max(0, taxableGross-allowance)

	perBand, totalIncomeTax := splitAcrossBands(taxableIncome, t.IncomeTax.Bands)
	byBand := make([]models.BandTax, len(t.IncomeTax.Bands))
	for i, b := range t.IncomeTax.Bands {
		byBand[i] = models.BandTax{Band: b.Name, Amount: perBand[i]}
	}

	ni := classOneNI(taxableGross, t.NationalInsurance.Class1)

	studentLoan := loanRepayment(taxableGross, in.StudentLoanPlan, t.StudentLoans)
	var postgradLoan float64
	if in.HasPostgraduateLoan {
		postgradLoan = loanRepayment(taxableGross, models.Postgraduate, t.StudentLoans)
	}

	var pensionRelief float64
	if !in.SalarySacrificePension {
		pensionRelief = extraPensionRelief(pension, taxableIncome, t.IncomeTax.Bands)
	}

	// Under salary sacrifice the contribution already left the gross, so
	// it is not a deduction on top; otherwise it comes out of net pay.
	totalDeductions := totalIncomeTax + ni + studentLoan + postgradLoan
	if !in.SalarySacrificePension {
		totalDeductions += pension
	}

	netAnnual := gross - totalDeductions

	var effectiveRate float64
	if gross > 0 {
		effectiveRate = totalDeductions / gross * 100
	}

	return &models.TaxBreakdown{
		GrossIncome:               gross,
		TaxableIncome:             taxableIncome,
		PersonalAllowanceUsed:     allowance,
		IncomeTaxByBand:           byBand,
		TotalIncomeTax:            totalIncomeTax,
		NIContributions:           ni,
		StudentLoanRepayment:      studentLoan,
		PostgraduateLoanRepayment: postgradLoan,
		PensionContribution:       pension,
		PensionTaxRelief:          pensionRelief,
		TotalDeductions:           totalDeductions,
		NetAnnualIncome:           netAnnual,
		NetMonthlyIncome:          netAnnual / 12,
		EffectiveTaxRate:          round2(effectiveRate),
		MarginalTaxRate:           round2(marginalRate(taxableGross, in, t) * 100),
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
