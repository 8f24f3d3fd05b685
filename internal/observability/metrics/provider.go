package metrics

import (
	"context"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
)

// NewMeterProvider builds the global meter provider. Disabled metrics resolve
// to a noop provider so instruments stay wired without cost.
func NewMeterProvider(lc fx.Lifecycle, cfg config.Config) metric.MeterProvider {
	if !cfg.Metrics.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider
	}

	provider := sdkmetric.NewMeterProvider()
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return provider.Shutdown(ctx)
			},
		})
	}
	return provider
}
