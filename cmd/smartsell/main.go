package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smartsellhq/smartsell/internal/migration"
	"github.com/smartsellhq/smartsell/internal/observability"
	"github.com/smartsellhq/smartsell/internal/server"
	"github.com/smartsellhq/smartsell/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
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
