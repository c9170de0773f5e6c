package models

// StudentLoanPlan identifies a UK student-loan repayment plan.
// The set is closed; anything else repays zero rather than erroring.
type StudentLoanPlan string

const (
	PlanNone     StudentLoanPlan = ""
	Plan1        StudentLoanPlan = "plan_1"
	Plan2        StudentLoanPlan = "plan_2"
	Plan4        StudentLoanPlan = "plan_4"
	Plan5        StudentLoanPlan = "plan_5"
	Postgraduate StudentLoanPlan = "postgraduate"
)

// ParseStudentLoanPlan maps a plan identifier to its typed value.
// Unknown identifiers (including "postgraduate", which is carried as a
// separate flag on TaxInput) yield PlanNone and ok=false.
func ParseStudentLoanPlan(s string) (StudentLoanPlan, bool) {
	switch StudentLoanPlan(s) {
	case Plan1, Plan2, Plan4, Plan5:
		return StudentLoanPlan(s), true
	default:
		return PlanNone, false
	}
}

// TaxInput is one income profile to run through the engine.
type TaxInput struct {
	// GrossSalary is the annual salary before any deductions. Must be >= 0.
	GrossSalary float64 `json:"gross_salary"`

	// Bonus is any additional annual income taxed as salary. Must be >= 0.
	Bonus float64 `json:"bonus"`

	// StudentLoanPlan is the undergraduate repayment plan, if any.
	StudentLoanPlan StudentLoanPlan `json:"student_loan_plan,omitempty"`

	// HasPostgraduateLoan adds the postgraduate loan repayment, which can
	// apply on top of an undergraduate plan.
	HasPostgraduateLoan bool `json:"has_postgraduate_loan"`

	// PensionContributionPercent is the employee contribution as a
	// percentage of gross income. Must be within [0, 100].
	PensionContributionPercent float64 `json:"pension_contribution_percent"`

	// SalarySacrificePension selects the sacrifice treatment: the
	// contribution reduces gross pay before tax, NI and loans are computed.
	// When false, relief-at-source treatment applies instead.
	SalarySacrificePension bool `json:"salary_sacrifice_pension"`

	// IsSecondaryJob models a flat-rate tax code: no personal allowance,
	// all income immediately taxable.
	IsSecondaryJob bool `json:"is_secondary_job"`
}

// BandTax is the income tax charged within one progressive band.
type BandTax struct {
	Band   string  `json:"band"`
	Amount float64 `json:"amount"`
}

// TaxBreakdown is the complete result of one calculation.
// It is always fully populated: a failed calculation returns an error and
// no breakdown, never a partial one.
type TaxBreakdown struct {
	GrossIncome           float64 `json:"gross_income"`
	TaxableIncome         float64 `json:"taxable_income"`
	PersonalAllowanceUsed float64 `json:"personal_allowance_used"`

	// IncomeTaxByBand lists the tax charged in each band, in band order.
	IncomeTaxByBand []BandTax `json:"income_tax_by_band"`
	TotalIncomeTax  float64   `json:"total_income_tax"`

	NIContributions float64 `json:"ni_contributions"`

	StudentLoanRepayment      float64 `json:"student_loan_repayment"`
	PostgraduateLoanRepayment float64 `json:"postgraduate_loan_repayment"`

	PensionContribution float64 `json:"pension_contribution"`
	PensionTaxRelief    float64 `json:"pension_tax_relief"`

	TotalDeductions  float64 `json:"total_deductions"`
	NetAnnualIncome  float64 `json:"net_annual_income"`
	NetMonthlyIncome float64 `json:"net_monthly_income"`

	// EffectiveTaxRate is total deductions over gross income, in percent.
	EffectiveTaxRate float64 `json:"effective_tax_rate"`

	// MarginalTaxRate is the combined rate on the next pound earned, in
	// percent, derived by forward simulation rather than from the fields
	// above.
	MarginalTaxRate float64 `json:"marginal_tax_rate"`
}
