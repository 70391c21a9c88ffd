package apikey

import (
	"github.com/openshelf/openshelf/internal/apikey/repository"
	"github.com/openshelf/openshelf/internal/apikey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
