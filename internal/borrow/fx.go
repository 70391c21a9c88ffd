package borrow

import (
	"github.com/openshelf/openshelf/internal/borrow/repository"
	"github.com/openshelf/openshelf/internal/borrow/service"
	"go.uber.org/fx"
)

var Module = fx.Module("borrow.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
