// Package rates loads and validates the versioned UK tax rate table.
//
// The table is the single configuration document the engine depends on. It
// is loaded once, validated, and treated as read-only afterward; adopting a
// new tax year means loading a fresh Table and swapping the reference.
package rates

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/quidwise/taxengine/internal/models"
)

//go:embed tax_rates_2025_26.json
var defaultDocument []byte

// Band is one contiguous income range taxed at a fixed rate.
type Band struct {
	Name string   `json:"name"`
	Min  float64  `json:"min"`
	Max  *float64 `json:"max"` // nil for the unbounded top band
	Rate float64  `json:"rate"`
}

// IncomeTax holds the personal allowance and the progressive band schedule.
type IncomeTax struct {
	PersonalAllowance float64 `json:"personal_allowance"`
	TaperThreshold    float64 `json:"personal_allowance_taper_threshold"`
	Bands             []Band  `json:"bands"`
}

// Class1 holds the employee National Insurance thresholds and rates.
type Class1 struct {
	PrimaryThreshold   float64 `json:"primary_threshold_annual"`
	UpperEarningsLimit float64 `json:"upper_earnings_limit"`
	RateBetween        float64 `json:"rate_between_thresholds"`
	RateAboveUEL       float64 `json:"rate_above_uel"`
}

// NationalInsurance groups the NI classes. Only Class 1 is modeled.
type NationalInsurance struct {
	Class1 Class1 `json:"class_1"`
}

// LoanPlan is the repayment threshold and rate for one student-loan plan.
type LoanPlan struct {
	Threshold float64 `json:"threshold"`
	Rate      float64 `json:"rate"`
}

// Table is the full rate configuration for one tax year.
type Table struct {
	TaxYear           string                              `json:"tax_year"`
	IncomeTax         IncomeTax                           `json:"income_tax"`
	NationalInsurance NationalInsurance                   `json:"national_insurance"`
	StudentLoans      map[models.StudentLoanPlan]LoanPlan `json:"student_loans"`
}

// Load reads and validates the rate document at path. An empty path loads
// the embedded default for the current tax year. Any error here is fatal to
// boot; it is never a per-calculation condition.
func Load(path string) (*Table, error) {
	doc := defaultDocument
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read rate table: %w", err)
		}
		doc = b
	}
	return Parse(doc)
}

// Parse decodes and validates a rate document.
func Parse(doc []byte) (*Table, error) {
	var t Table
	if err := json.Unmarshal(doc, &t); err != nil {
		return nil, fmt.Errorf("parse rate table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate table: %w", err)
	}
	return &t, nil
}

// Validate checks the structural invariants the calculators rely on.
func (t *Table) Validate() error {
	it := t.IncomeTax
	if it.PersonalAllowance < 0 {
		return fmt.Errorf("personal allowance must not be negative")
	}
	if it.TaperThreshold <= 0 {
		return fmt.Errorf("taper threshold must be positive")
	}
	if len(it.Bands) == 0 {
		return fmt.Errorf("at least one income tax band required")
	}
	for i, b := range it.Bands {
		last := i == len(it.Bands)-1
		if b.Max == nil && !last {
			return fmt.Errorf("band %q: only the last band may be unbounded", b.Name)
		}
		if last && b.Max != nil {
			return fmt.Errorf("band %q: the last band must be unbounded", b.Name)
		}
		if b.Max != nil && *b.Max <= b.Min {
			return fmt.Errorf("band %q: max must exceed min", b.Name)
		}
		if i == 0 {
			if b.Min != 0 {
				return fmt.Errorf("band %q: first band must start at 0", b.Name)
			}
		} else {
			prev := it.Bands[i-1]
			if prev.Max == nil || b.Min != *prev.Max {
				return fmt.Errorf("band %q: bands must be contiguous and ascending", b.Name)
			}
			if b.Rate < prev.Rate {
				return fmt.Errorf("band %q: rates must not decrease", b.Name)
			}
		}
	}

	ni := t.NationalInsurance.Class1
	if ni.PrimaryThreshold < 0 || ni.UpperEarningsLimit <= ni.PrimaryThreshold {
		return fmt.Errorf("NI upper earnings limit must exceed primary threshold")
	}
	if ni.RateBetween < 0 || ni.RateAboveUEL < 0 {
		return fmt.Errorf("NI rates must not be negative")
	}

	for _, plan := range []models.StudentLoanPlan{
		models.Plan1, models.Plan2, models.Plan4, models.Plan5, models.Postgraduate,
	} {
		lp, ok := t.StudentLoans[plan]
		if !ok {
			return fmt.Errorf("student loan plan %q missing", plan)
		}
		if lp.Threshold <= 0 || lp.Rate < 0 {
			return fmt.Errorf("student loan plan %q: invalid threshold or rate", plan)
		}
	}
	return nil
}

// TaperExhaustedAt is the gross income at which the personal allowance has
// been fully tapered away: one pound of allowance lost per two pounds above
// the threshold. Derived from the table so a changed allowance or threshold
// cannot desynchronize the marginal-rate override.
func (t *Table) TaperExhaustedAt() float64 {
	return t.IncomeTax.TaperThreshold + 2*t.IncomeTax.PersonalAllowance
}
