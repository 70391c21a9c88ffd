package book

import (
	"github.com/openshelf/openshelf/internal/book/repository"
	"github.com/openshelf/openshelf/internal/book/service"
	"go.uber.org/fx"
)

var Module = fx.Module("book.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
