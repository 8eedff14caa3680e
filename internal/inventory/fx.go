package inventory

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/backoffice/internal/inventory/domain"
	"github.com/smallbiznis/backoffice/internal/inventory/service"
)

var Module = fx.Module("inventory",
	fx.Provide(
		service.New,
		func(s domain.Service) domain.Ledger { return s },
	),
)
