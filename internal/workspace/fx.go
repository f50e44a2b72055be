package workspace

import (
	"github.com/smartsellhq/smartsell/internal/workspace/repository"
	"github.com/smartsellhq/smartsell/internal/workspace/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workspace.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
