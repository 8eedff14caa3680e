package manufacture

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/backoffice/internal/manufacture/service"
)

var Module = fx.Module("manufacture",
	fx.Provide(
		service.New,
	),
)
