package observability

import (
	"github.com/StoicRounin/paystack-gateway/internal/observability/logger"
	"github.com/StoicRounin/paystack-gateway/internal/observability/metrics"
	"github.com/StoicRounin/paystack-gateway/internal/observability/tracing"
	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	fx.Module("observability",
		fx.Invoke(tracing.NewProvider),
		fx.Provide(metrics.NewMeterProvider),
		fx.Provide(metrics.NewHTTPMetrics),
		fx.Provide(metrics.NewPaymentMetrics),
	),
)
