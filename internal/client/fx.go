package client

import (
	"github.com/MathisL971/invoicegen/internal/client/repository"
	"github.com/MathisL971/invoicegen/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
