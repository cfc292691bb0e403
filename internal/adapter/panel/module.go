package panel

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/darkbyte-host/storefront/internal/config"
)

// Module exposes the panel client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PanelAddress, p.Config.PanelToken, p.Logger)
}
