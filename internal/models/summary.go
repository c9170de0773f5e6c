package models

// MerchantTotal is one merchant's total spend over a summarized period.
type MerchantTotal struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
}

// SpendingSummary is pre-aggregated spending context that the calling layer
// may attach alongside a calculation request.
//
// NOTE: This engine never parses transaction data itself. Statement parsing
// and merchant categorization happen upstream; this value arrives already
// computed and is passed through untouched.
type SpendingSummary struct {
	// TotalIncome is the sum of incoming amounts over the period.
	TotalIncome float64 `json:"total_income"`

	// TotalSpending is the sum of outgoing amounts over the period.
	TotalSpending float64 `json:"total_spending"`

	// NetFlow is income minus spending.
	NetFlow float64 `json:"net_flow"`

	// SpendingByCategory maps category name to its total.
	SpendingByCategory map[string]float64 `json:"spending_by_category,omitempty"`

	// TopMerchants lists the largest merchants by spend, descending.
	TopMerchants []MerchantTotal `json:"top_merchants,omitempty"`

	TransactionCount int `json:"transaction_count"`

	// DateFrom and DateTo bound the period, ISO 8601 dates.
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}
