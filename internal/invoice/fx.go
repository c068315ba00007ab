package invoice

import (
	"github.com/MathisL971/invoicegen/internal/invoice/repository"
	"github.com/MathisL971/invoicegen/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
