package logger

import (
	"context"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	obscontext "github.com/StoicRounin/paystack-gateway/internal/observability/context"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability.logger",
	fx.Provide(New),
)

// New builds the process logger and installs it as the zap global.
func New(cfg config.Config) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	log = log.Named(cfg.ServiceName())
	zap.ReplaceGlobals(log)
	return log, nil
}

// FromContext returns the global logger enriched with trace and request
// correlation fields present on the context.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}

	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		log = log.With(
			zap.String("trace_id", span.TraceID().String()),
			zap.String("span_id", span.SpanID().String()),
		)
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	if storeID := obscontext.StoreIDFromContext(ctx); storeID != "" {
		log = log.With(zap.String("store_id", storeID))
	}
	return log
}
