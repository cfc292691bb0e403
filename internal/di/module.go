package di

import (
	"go.uber.org/fx"

	"github.com/darkbyte-host/storefront/internal/adapter/panel"
	"github.com/darkbyte-host/storefront/internal/app"
	"github.com/darkbyte-host/storefront/internal/config"
	"github.com/darkbyte-host/storefront/internal/logger"
	"github.com/darkbyte-host/storefront/internal/pkg/auth"
	"github.com/darkbyte-host/storefront/internal/server/http/handlers"
	"github.com/darkbyte-host/storefront/internal/server/http/router"
	"github.com/darkbyte-host/storefront/internal/storage/postgres"
	"github.com/darkbyte-host/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		panel.Module,
		usecase.Module,
		fx.Provide(func(facade *app.StoreFacade) handlers.StoreFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
