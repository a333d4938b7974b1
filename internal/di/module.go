package di

import (
	"go.uber.org/fx"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
	"github.com/abdelrahman464/blackbox/internal/app"
	"github.com/abdelrahman464/blackbox/internal/config"
	"github.com/abdelrahman464/blackbox/internal/logger"
	"github.com/abdelrahman464/blackbox/internal/pkg/auth"
	"github.com/abdelrahman464/blackbox/internal/server/http/handlers"
	"github.com/abdelrahman464/blackbox/internal/server/http/router"
	"github.com/abdelrahman464/blackbox/internal/storage/postgres"
	"github.com/abdelrahman464/blackbox/internal/usecase"
)

// Module assembles the full application graph. Extra options are appended
// after the defaults so tests can override individual constructors.
func Module(opts ...fx.Option) fx.Option {
	base := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		usecase.Module,
		router.Module,
		app.Module,
		fx.Provide(func(f *app.MarketFacade) handlers.MarketFacade { return f }),
	}
	return fx.Options(append(base, opts...)...)
}
