package settings

import (
	"github.com/StoicRounin/paystack-gateway/internal/settings/repository"
	"github.com/StoicRounin/paystack-gateway/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
