// Package service exposes the tax engine over Connect RPC.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/quidwise/taxengine/internal/calculator"
	"github.com/quidwise/taxengine/internal/models"
	"github.com/quidwise/taxengine/internal/rates"
)

// Procedure paths for the TaxService.
const (
	BasePath           = "/quidwise.tax.v1.TaxService/"
	CalculateProcedure = BasePath + "Calculate"
	GetRatesProcedure  = BasePath + "GetRates"
)

// CalculateRequest carries one income profile. Its fields are exactly the
// TaxInput contract.
type CalculateRequest struct {
	models.TaxInput
}

// CalculateResponse carries the full breakdown plus calculation metadata.
type CalculateResponse struct {
	CalculationID string              `json:"calculation_id"`
	TaxYear       string              `json:"tax_year"`
	CalculatedAt  string              `json:"calculated_at"`
	Breakdown     models.TaxBreakdown `json:"breakdown"`
}

// GetRatesRequest has no parameters; the active table is returned as-is.
type GetRatesRequest struct{}

// GetRatesResponse carries the active rate-table snapshot.
type GetRatesResponse struct {
	Rates *rates.Table `json:"rates"`
}

// TaxService implements the TaxService RPC over a hot-swappable engine.
// Each call captures one engine snapshot up front, so a concurrent rate
// swap never changes the table mid-calculation.
type TaxService struct {
	engine atomic.Pointer[calculator.Engine]
}

// NewTaxService creates a TaxService computing against the given engine.
func NewTaxService(engine *calculator.Engine) *TaxService {
	s := &TaxService{}
	s.engine.Store(engine)
	return s
}

// Swap atomically installs a new engine (a new tax year's rates).
// In-flight calculations keep the snapshot they captured.
func (s *TaxService) Swap(engine *calculator.Engine) {
	s.engine.Store(engine)
	slog.Info("Rate table swapped", "tax_year", engine.Table().TaxYear)
}

// Calculate runs one synchronous tax calculation.
func (s *TaxService) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	engine := s.engine.Load()

	in := req.Msg.TaxInput
	// An unrecognized plan identifier (including "postgraduate", which is
	// its own input flag) repays zero rather than failing the call.
	in.StudentLoanPlan, _ = models.ParseStudentLoanPlan(string(in.StudentLoanPlan))

	breakdown, err := engine.Calculate(in)
	if err != nil {
		if errors.Is(err, calculator.ErrNegativeSalary) ||
			errors.Is(err, calculator.ErrNegativeBonus) ||
			errors.Is(err, calculator.ErrInvalidPensionPercent) {
			slog.Warn("Calculate rejected input", "error", err)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		slog.Error("Calculate failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Debug("Calculated breakdown",
		"gross_income", breakdown.GrossIncome,
		"total_deductions", breakdown.TotalDeductions,
		"marginal_rate", breakdown.MarginalTaxRate,
	)

	return connect.NewResponse(&CalculateResponse{
		CalculationID: uuid.New().String(),
		TaxYear:       engine.Table().TaxYear,
		CalculatedAt:  time.Now().UTC().Format(time.RFC3339),
		Breakdown:     *breakdown,
	}), nil
}

// GetRates returns the active rate-table snapshot.
func (s *TaxService) GetRates(ctx context.Context, req *connect.Request[GetRatesRequest]) (*connect.Response[GetRatesResponse], error) {
	return connect.NewResponse(&GetRatesResponse{
		Rates: s.engine.Load().Table(),
	}), nil
}

// NewTaxServiceHandler registers the TaxService procedures and returns the
// base path and handler to mount, in the shape generated Connect bindings
// use. The plain-JSON codec is always installed; callers add interceptors
// through opts.
func NewTaxServiceHandler(svc *TaxService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CalculateProcedure, connect.NewUnaryHandler(CalculateProcedure, svc.Calculate, opts...))
	mux.Handle(GetRatesProcedure, connect.NewUnaryHandler(GetRatesProcedure, svc.GetRates, opts...))
	return BasePath, mux
}
