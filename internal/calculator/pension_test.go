package calculator

import (
	"math"
	"testing"

	"github.com/quidwise/taxengine/internal/models"
)

func TestPensionTreatments(t *testing.T) {
	engine := New(testTable(t))

	tests := []struct {
		name         string
		input        models.TaxInput
		validateFunc func(t *testing.T, b *models.TaxBreakdown)
	}{
		{
			name:  "salary sacrifice reduces the taxable base",
			input: models.TaxInput{GrossSalary: 60000, PensionContributionPercent: 10, SalarySacrificePension: true},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				if math.Abs(b.PensionContribution-6000) > 0.01 {
					t.Errorf("contribution = %v, want 6000", b.PensionContribution)
				}
				// 54000 gross after sacrifice, allowance 12570.
				if math.Abs(b.TaxableIncome-41430) > 0.01 {
					t.Errorf("taxable income = %v, want 41430", b.TaxableIncome)
				}
				// The reduction is itself the relief.
				if b.PensionTaxRelief != 0 {
					t.Errorf("relief = %v, want 0 under sacrifice", b.PensionTaxRelief)
				}
			},
		},
		{
			name:  "at-source contribution leaves the base alone",
			input: models.TaxInput{GrossSalary: 60000, PensionContributionPercent: 10},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				if math.Abs(b.TaxableIncome-47430) > 0.01 {
					t.Errorf("taxable income = %v, want 47430", b.TaxableIncome)
				}
				// Whole 6000 contribution sits above the 37700 boundary:
				// extra 20% relief on all of it.
				if math.Abs(b.PensionTaxRelief-1200) > 0.01 {
					t.Errorf("relief = %v, want 1200", b.PensionTaxRelief)
				}
			},
		},
		{
			name:  "basic-rate taxpayer gets no extra relief",
			input: models.TaxInput{GrossSalary: 35000, PensionContributionPercent: 5},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				if b.PensionTaxRelief != 0 {
					t.Errorf("relief = %v, want 0 at basic rate", b.PensionTaxRelief)
				}
			},
		},
		{
			name:  "additional-rate portion earns a further 5%",
			input: models.TaxInput{GrossSalary: 160000, PensionContributionPercent: 10},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				// Allowance fully tapered: taxable 160000. The 16000
				// contribution falls entirely above both boundaries:
				// 16000*0.20 + 16000*0.05.
				if math.Abs(b.PensionTaxRelief-4000) > 0.01 {
					t.Errorf("relief = %v, want 4000", b.PensionTaxRelief)
				}
			},
		},
		{
			name:  "relief per band is capped at the contribution",
			input: models.TaxInput{GrossSalary: 126000, PensionContributionPercent: 1},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				// Contribution 1260, taxable 126000. Higher-band portion
				// caps at the contribution (1260 * 0.20); only 860 sits
				// above the additional boundary (860 * 0.05).
				if math.Abs(b.PensionTaxRelief-295) > 0.01 {
					t.Errorf("relief = %v, want 295", b.PensionTaxRelief)
				}
			},
		},
		{
			name:  "taxable income exactly on a band boundary",
			input: models.TaxInput{GrossSalary: 50270, PensionContributionPercent: 10},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				// Taxable 37700 exactly: nothing falls above the boundary,
				// so no extra relief and nothing negative either.
				if b.PensionTaxRelief != 0 {
					t.Errorf("relief = %v, want 0 at exact boundary", b.PensionTaxRelief)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Calculate(tt.input)
			if err != nil {
				t.Fatalf("Calculate failed: %v", err)
			}
			tt.validateFunc(t, got)
		})
	}
}
