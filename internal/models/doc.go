// Package models defines the core domain values for the QuidWise tax engine.
//
// # Models
//
//   - TaxInput: one income profile submitted for calculation
//   - TaxBreakdown: the complete deduction breakdown returned for it
//   - StudentLoanPlan: the closed set of UK student-loan repayment plans
//   - SpendingSummary: pre-aggregated spending context supplied by the
//     calling layer (never computed here)
//
// # Design Principles
//
// 1. Values are immutable once built: a TaxBreakdown is produced atomically
// by one calculation and never mutated or partially filled afterward.
// 2. JSON tags match the external contract (snake_case), so the same types
// serve the RPC layer without a separate wire schema.
// 3. No hidden defaults: every TaxInput field's zero value is its default.
package models
