package payment

import (
	"github.com/StoicRounin/paystack-gateway/internal/events"
	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	"github.com/StoicRounin/paystack-gateway/internal/payment/service"
	"github.com/StoicRounin/paystack-gateway/internal/paystack"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(
		fx.Annotate(paystack.NewClient, fx.As(new(paymentdomain.ProviderClient))),
	),
	fx.Provide(events.NewOutbox),
	fx.Provide(service.NewService),
)
