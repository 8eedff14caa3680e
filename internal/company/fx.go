package company

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/backoffice/internal/company/service"
)

var Module = fx.Module("company",
	fx.Provide(
		service.New,
	),
)
