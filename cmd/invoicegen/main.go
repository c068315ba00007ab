package main

import (
	"github.com/MathisL971/invoicegen/internal/client"
	"github.com/MathisL971/invoicegen/internal/clock"
	"github.com/MathisL971/invoicegen/internal/config"
	"github.com/MathisL971/invoicegen/internal/invoice"
	"github.com/MathisL971/invoicegen/internal/logger"
	"github.com/MathisL971/invoicegen/internal/migration"
	"github.com/MathisL971/invoicegen/internal/observability/metrics"
	"github.com/MathisL971/invoicegen/internal/profile"
	"github.com/MathisL971/invoicegen/internal/reference"
	"github.com/MathisL971/invoicegen/internal/server"
	"github.com/MathisL971/invoicegen/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		reference.Module,
		profile.Module,
		client.Module,
		invoice.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
