package order

import (
	"github.com/smartsellhq/smartsell/internal/order/repository"
	"github.com/smartsellhq/smartsell/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
