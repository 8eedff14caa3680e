package product

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/backoffice/internal/product/repository"
	"github.com/smallbiznis/backoffice/internal/product/service"
)

var Module = fx.Module("product",
	fx.Provide(
		repository.New,
		service.New,
	),
)
