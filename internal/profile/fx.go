package profile

import (
	"github.com/MathisL971/invoicegen/internal/profile/repository"
	"github.com/MathisL971/invoicegen/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
