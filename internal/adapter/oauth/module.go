package oauth

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/memoriza/memoriza/internal/config"
)

// Module exposes oauth client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) Client {
	return NewHTTPClient(Config{
		ClientID:     p.Config.OAuthClientID,
		ClientSecret: p.Config.OAuthClientSecret,
		AuthURL:      p.Config.OAuthAuthURL,
		TokenURL:     p.Config.OAuthTokenURL,
		ProfileURL:   p.Config.OAuthProfileURL,
		RedirectURL:  p.Config.OAuthRedirectURL,
	}, p.Logger)
}
