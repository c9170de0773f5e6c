package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsInterceptor returns a Connect interceptor that records a request
// counter (by procedure and result code) and a duration histogram for
// every RPC, registered on the given registerer.
func MetricsInterceptor(reg prometheus.Registerer) connect.UnaryInterceptorFunc {
	requests := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "tax_rpc_requests_total",
		Help: "RPC requests handled, by procedure and result code.",
	}, []string{"procedure", "code"})

	duration := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tax_rpc_duration_seconds",
		Help:    "RPC handling duration in seconds, by procedure.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			requests.WithLabelValues(procedure, code).Inc()
			duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
