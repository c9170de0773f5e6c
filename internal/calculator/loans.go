package calculator

import (
	"github.com/quidwise/taxengine/internal/models"
	"github.com/quidwise/taxengine/internal/rates"
)

// loanRepayment computes the annual repayment for one loan plan: a flat
// rate on gross income above the plan's threshold. An absent or unknown
// plan repays zero rather than erroring.
//
// Loans are independent and additive; a borrower can owe an undergraduate
// plan and the postgraduate loan at the same time.
func loanRepayment(gross float64, plan models.StudentLoanPlan, loans map[models.StudentLoanPlan]rates.LoanPlan) float64 {
	lp, ok := loans[plan]
	if !ok {
		return 0
	}
	if gross <= lp.Threshold {
		return 0
	}
	return (gross - lp.Threshold) * lp.Rate
}
