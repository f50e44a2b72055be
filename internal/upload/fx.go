package upload

import (
	"github.com/smartsellhq/smartsell/internal/upload/repository"
	"github.com/smartsellhq/smartsell/internal/upload/service"
	"go.uber.org/fx"
)

var Module = fx.Module("upload",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
