package order

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/backoffice/internal/order/service"
)

var Module = fx.Module("order",
	fx.Provide(
		service.New,
	),
)
