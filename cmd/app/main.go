package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mealdeck/recipebook-back/internal/config"
	"github.com/mealdeck/recipebook-back/internal/db"
	"github.com/mealdeck/recipebook-back/internal/service"
	"github.com/mealdeck/recipebook-back/internal/transport"
)

func main() {
	app := fx.New(
		fx.Provide(
			newSugaredLogger,
			config.NewConfig,
			db.NewGormClient,
			service.NewAuth,
			service.NewCatalog,
			service.NewRecipes,
			service.NewRelations,
			service.NewView,
			service.NewShopping,
			service.NewSubscriptions,
			transport.NewHTTPServer,
		),
		fx.Invoke(func(server *transport.HTTPServer) {}),
	)

	app.Run()
}

func newSugaredLogger() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
