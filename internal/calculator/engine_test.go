package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/quidwise/taxengine/internal/models"
)

func TestCalculateKnownValues(t *testing.T) {
	engine := New(testTable(t))

	tests := []struct {
		name         string
		input        models.TaxInput
		validateFunc func(t *testing.T, b *models.TaxBreakdown)
	}{
		{
			name:  "below every threshold",
			input: models.TaxInput{GrossSalary: 12000},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				if b.TotalIncomeTax != 0 {
					t.Errorf("total income tax = %v, want 0", b.TotalIncomeTax)
				}
				if b.NIContributions != 0 {
					t.Errorf("NI = %v, want 0", b.NIContributions)
				}
				if b.TotalDeductions != 0 {
					t.Errorf("total deductions = %v, want 0", b.TotalDeductions)
				}
				if b.NetAnnualIncome != 12000 {
					t.Errorf("net annual = %v, want 12000", b.NetAnnualIncome)
				}
			},
		},
		{
			name:  "zero income",
			input: models.TaxInput{},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				if b.TotalDeductions != 0 || b.NetAnnualIncome != 0 {
					t.Errorf("deductions = %v, net = %v, want both 0", b.TotalDeductions, b.NetAnnualIncome)
				}
				if b.EffectiveTaxRate != 0 {
					t.Errorf("effective rate = %v, want 0 (guarded division)", b.EffectiveTaxRate)
				}
			},
		},
		{
			name:  "median earner",
			input: models.TaxInput{GrossSalary: 35000},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				// Taxable 22430 at 20%, NI (35000-12570) at 8%.
				if math.Abs(b.TotalIncomeTax-4486) > 0.01 {
					t.Errorf("income tax = %v, want 4486", b.TotalIncomeTax)
				}
				if math.Abs(b.NIContributions-1794.4) > 0.01 {
					t.Errorf("NI = %v, want 1794.40", b.NIContributions)
				}
			},
		},
		{
			name:  "plan 2 student loan",
			input: models.TaxInput{GrossSalary: 35000, StudentLoanPlan: models.Plan2},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				want := (35000 - 27295) * 0.09
				if math.Abs(b.StudentLoanRepayment-want) > 1 {
					t.Errorf("student loan = %v, want %v", b.StudentLoanRepayment, want)
				}
			},
		},
		{
			name:  "undergraduate and postgraduate loans stack",
			input: models.TaxInput{GrossSalary: 40000, StudentLoanPlan: models.Plan1, HasPostgraduateLoan: true},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				wantPlan1 := (40000 - 24990) * 0.09
				wantPostgrad := (40000 - 21000) * 0.06
				if math.Abs(b.StudentLoanRepayment-wantPlan1) > 0.01 {
					t.Errorf("student loan = %v, want %v", b.StudentLoanRepayment, wantPlan1)
				}
				if math.Abs(b.PostgraduateLoanRepayment-wantPostgrad) > 0.01 {
					t.Errorf("postgraduate loan = %v, want %v", b.PostgraduateLoanRepayment, wantPostgrad)
				}
			},
		},
		{
			name:  "unknown plan repays nothing",
			input: models.TaxInput{GrossSalary: 40000, StudentLoanPlan: models.StudentLoanPlan("plan_9")},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				if b.StudentLoanRepayment != 0 {
					t.Errorf("student loan = %v, want 0 for unknown plan", b.StudentLoanRepayment)
				}
			},
		},
		{
			name:  "bonus is taxed as salary",
			input: models.TaxInput{GrossSalary: 50000, Bonus: 10000},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				if b.GrossIncome != 60000 {
					t.Errorf("gross income = %v, want 60000", b.GrossIncome)
				}
				// Identical to a flat 60000 salary.
				flat, err := New(testTable(t)).Calculate(models.TaxInput{GrossSalary: 60000})
				if err != nil {
					t.Fatalf("Calculate failed: %v", err)
				}
				if math.Abs(b.TotalDeductions-flat.TotalDeductions) > 0.01 {
					t.Errorf("deductions = %v, want %v (same as flat salary)", b.TotalDeductions, flat.TotalDeductions)
				}
			},
		},
		{
			name:  "secondary job has no allowance at any income",
			input: models.TaxInput{GrossSalary: 20000, IsSecondaryJob: true},
			validateFunc: func(t *testing.T, b *models.TaxBreakdown) {
				if b.PersonalAllowanceUsed != 0 {
					t.Errorf("allowance = %v, want 0 for secondary job", b.PersonalAllowanceUsed)
				}
				if b.TaxableIncome != 20000 {
					t.Errorf("taxable income = %v, want full gross", b.TaxableIncome)
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

func TestAllowanceTaperThroughBreakdown(t *testing.T) {
	engine := New(testTable(t))

	tests := []struct {
		gross float64
		want  float64
	}{
		{50000, 12570},
		{100000, 12570},
		{110000, 7570},
		{120000, 2570},
		{125140, 0},
		{180000, 0},
	}

	for _, tt := range tests {
		got, err := engine.Calculate(models.TaxInput{GrossSalary: tt.gross})
		if err != nil {
			t.Fatalf("Calculate(%v) failed: %v", tt.gross, err)
		}
		if math.Abs(got.PersonalAllowanceUsed-tt.want) > 0.01 {
			t.Errorf("allowance at %v = %v, want %v", tt.gross, got.PersonalAllowanceUsed, tt.want)
		}
	}
}

func TestConservation(t *testing.T) {
	engine := New(testTable(t))

	inputs := []models.TaxInput{
		{GrossSalary: 0},
		{GrossSalary: 12000},
		{GrossSalary: 35000, StudentLoanPlan: models.Plan2},
		{GrossSalary: 60000, PensionContributionPercent: 5},
		{GrossSalary: 60000, PensionContributionPercent: 5, SalarySacrificePension: true},
		{GrossSalary: 110000, HasPostgraduateLoan: true},
		{GrossSalary: 250000, Bonus: 50000, StudentLoanPlan: models.Plan1, HasPostgraduateLoan: true, PensionContributionPercent: 10},
		{GrossSalary: 45000, IsSecondaryJob: true},
	}

	for _, in := range inputs {
		b, err := engine.Calculate(in)
		if err != nil {
			t.Fatalf("Calculate(%+v) failed: %v", in, err)
		}

		sum := b.TotalIncomeTax + b.NIContributions + b.StudentLoanRepayment + b.PostgraduateLoanRepayment
		if !in.SalarySacrificePension {
			sum += b.PensionContribution
		}
		if sum != b.TotalDeductions {
			t.Errorf("input %+v: deduction parts sum to %v, total is %v", in, sum, b.TotalDeductions)
		}
		if math.Abs(b.NetAnnualIncome+b.TotalDeductions-b.GrossIncome) > 1e-9 {
			t.Errorf("input %+v: net %v + deductions %v != gross %v", in, b.NetAnnualIncome, b.TotalDeductions, b.GrossIncome)
		}
		if math.Abs(b.NetMonthlyIncome*12-b.NetAnnualIncome) > 1e-9 {
			t.Errorf("input %+v: monthly %v inconsistent with annual %v", in, b.NetMonthlyIncome, b.NetAnnualIncome)
		}
	}
}

func TestDeductionsMonotonicInGross(t *testing.T) {
	engine := New(testTable(t))

	prev := -1.0
	for gross := 0.0; gross <= 300000; gross += 500 {
		b, err := engine.Calculate(models.TaxInput{GrossSalary: gross, StudentLoanPlan: models.Plan2})
		if err != nil {
			t.Fatalf("Calculate(%v) failed: %v", gross, err)
		}
		if b.TotalDeductions < prev {
			t.Fatalf("deductions fell from %v to %v at gross %v", prev, b.TotalDeductions, gross)
		}
		prev = b.TotalDeductions
	}
}

func TestSalarySacrificeBeatsReliefAtSource(t *testing.T) {
	engine := New(testTable(t))

	for _, gross := range []float64{30000, 60000, 110000, 180000} {
		sacrifice, err := engine.Calculate(models.TaxInput{GrossSalary: gross, PensionContributionPercent: 8, SalarySacrificePension: true})
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		atSource, err := engine.Calculate(models.TaxInput{GrossSalary: gross, PensionContributionPercent: 8})
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}

		if sacrifice.TotalIncomeTax > atSource.TotalIncomeTax+1e-9 {
			t.Errorf("gross %v: sacrifice income tax %v exceeds at-source %v", gross, sacrifice.TotalIncomeTax, atSource.TotalIncomeTax)
		}
		if sacrifice.NIContributions > atSource.NIContributions+1e-9 {
			t.Errorf("gross %v: sacrifice NI %v exceeds at-source %v", gross, sacrifice.NIContributions, atSource.NIContributions)
		}
		if sacrifice.NetAnnualIncome < atSource.NetAnnualIncome-1e-9 {
			t.Errorf("gross %v: sacrifice net %v below at-source %v", gross, sacrifice.NetAnnualIncome, atSource.NetAnnualIncome)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	engine := New(testTable(t))

	tests := []struct {
		name  string
		input models.TaxInput
		want  error
	}{
		{"negative salary", models.TaxInput{GrossSalary: -1}, ErrNegativeSalary},
		{"negative bonus", models.TaxInput{GrossSalary: 30000, Bonus: -5000}, ErrNegativeBonus},
		{"pension percent below range", models.TaxInput{GrossSalary: 30000, PensionContributionPercent: -5}, ErrInvalidPensionPercent},
		{"pension percent above range", models.TaxInput{GrossSalary: 30000, PensionContributionPercent: 150}, ErrInvalidPensionPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := engine.Calculate(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if b != nil {
				t.Errorf("expected no breakdown on rejected input, got %+v", b)
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	engine := New(testTable(t))
	input := models.TaxInput{
		GrossSalary:                87654.32,
		Bonus:                      1234.56,
		StudentLoanPlan:            models.Plan4,
		HasPostgraduateLoan:        true,
		PensionContributionPercent: 7.5,
	}

	first, err := engine.Calculate(input)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	second, err := engine.Calculate(input)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different breakdowns:\n%+v\n%+v", first, second)
	}
}
