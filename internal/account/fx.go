package account

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/backoffice/internal/account/repository"
	"github.com/smallbiznis/backoffice/internal/account/service"
)

var Module = fx.Module("account",
	fx.Provide(
		repository.New,
		service.New,
	),
)
