package auth

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/backoffice/internal/auth/service"
	"github.com/smallbiznis/backoffice/internal/auth/session"
)

var Module = fx.Module("auth",
	fx.Provide(
		session.NewManager,
		service.New,
	),
)
