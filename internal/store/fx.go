package store

import (
	"github.com/smartsellhq/smartsell/internal/store/repository"
	"github.com/smartsellhq/smartsell/internal/store/service"
	"go.uber.org/fx"
)

var Module = fx.Module("store",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
