package router

import (
	"go.uber.org/fx"

	"github.com/memoriza/memoriza/internal/app"
	"github.com/memoriza/memoriza/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(facade *app.StoreFacade) handlers.StoreFacade { return facade }),
	fx.Provide(Setup),
)
