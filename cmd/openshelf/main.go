package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/server"
	"github.com/openshelf/openshelf/pkg/db"
	"github.com/openshelf/openshelf/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
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
