package auth

import (
	"github.com/smartsellhq/smartsell/internal/auth/google"
	"github.com/smartsellhq/smartsell/internal/auth/repository"
	"github.com/smartsellhq/smartsell/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(
		repository.Provide,
		google.NewVerifier,
		service.New,
	),
)
