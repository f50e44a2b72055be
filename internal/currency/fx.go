package currency

import (
	"github.com/smartsellhq/smartsell/internal/currency/repository"
	"github.com/smartsellhq/smartsell/internal/currency/service"
	"go.uber.org/fx"
)

var Module = fx.Module("currency",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
