package seed

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/backoffice/internal/seed/service"
)

var Module = fx.Module("seed",
	fx.Provide(
		service.New,
	),
)
