package pixel

import (
	"github.com/smartsellhq/smartsell/internal/pixel/repository"
	"github.com/smartsellhq/smartsell/internal/pixel/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pixel",
	fx.Provide(
		repository.Provide,
		service.NewChecker,
		service.New,
	),
)
