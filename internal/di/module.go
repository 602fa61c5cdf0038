package di

import (
	"github.com/memoriza/memoriza/internal/adapter/oauth"
	"github.com/memoriza/memoriza/internal/adapter/payment"
	"github.com/memoriza/memoriza/internal/app"
	"github.com/memoriza/memoriza/internal/config"
	"github.com/memoriza/memoriza/internal/logger"
	"github.com/memoriza/memoriza/internal/pkg/auth"
	"github.com/memoriza/memoriza/internal/server/http/router"
	"github.com/memoriza/memoriza/internal/storage/cache"
	"github.com/memoriza/memoriza/internal/storage/postgres"
	"github.com/memoriza/memoriza/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		payment.Module,
		oauth.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
