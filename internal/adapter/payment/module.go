package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/abdelrahman464/blackbox/internal/config"
)

// Module exposes the payment gateway implementation to the fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (Gateway, error) {
	return NewHTTPClient(
		p.Config.PaymentAPIBase,
		p.Config.PaymentSecretKey,
		p.Config.PaymentWebhookSecret,
		p.Config.PaymentTimeout,
		p.Logger,
	)
}
