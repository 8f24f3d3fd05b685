package metrics

import (
	"context"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PaymentMetrics counts gateway outcomes the user-facing flow stays silent
// about, most notably callbacks that reference no known order.
type PaymentMetrics struct {
	ordersNotFound       metric.Int64Counter
	verificationFailures metric.Int64Counter
	initializeFailures   metric.Int64Counter
}

func NewPaymentMetrics(cfg config.Config, provider metric.MeterProvider) (*PaymentMetrics, error) {
	meter := provider.Meter(cfg.ServiceName() + "/payment")

	ordersNotFound, err := meter.Int64Counter("payment.orders_not_found")
	if err != nil {
		return nil, err
	}
	verificationFailures, err := meter.Int64Counter("payment.verification_failures")
	if err != nil {
		return nil, err
	}
	initializeFailures, err := meter.Int64Counter("payment.initialize_failures")
	if err != nil {
		return nil, err
	}

	return &PaymentMetrics{
		ordersNotFound:       ordersNotFound,
		verificationFailures: verificationFailures,
		initializeFailures:   initializeFailures,
	}, nil
}

// OrderNotFound records a callback or webhook whose reference matched no order.
func (m *PaymentMetrics) OrderNotFound(ctx context.Context, delivery string) {
	if m == nil {
		return
	}
	m.ordersNotFound.Add(ctx, 1, metric.WithAttributes(attribute.String("delivery", delivery)))
}

// VerificationFailed records a provider verification that reported unverified.
func (m *PaymentMetrics) VerificationFailed(ctx context.Context, delivery string) {
	if m == nil {
		return
	}
	m.verificationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("delivery", delivery)))
}

// InitializeFailed records a failed transaction-initialize call.
func (m *PaymentMetrics) InitializeFailed(ctx context.Context) {
	if m == nil {
		return
	}
	m.initializeFailures.Add(ctx, 1)
}
