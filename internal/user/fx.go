package user

import (
	"github.com/openshelf/openshelf/internal/user/repository"
	"github.com/openshelf/openshelf/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
