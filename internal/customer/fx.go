package customer

import (
	"github.com/smartsellhq/smartsell/internal/customer/repository"
	"github.com/smartsellhq/smartsell/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
