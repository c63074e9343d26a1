// Package app contains the dependency setup for the catalog backend.
package app

import (
	"log/slog"
	"net/http"

	"github.com/bpsoft/catalog/internal/server/rest"
	"github.com/bpsoft/catalog/internal/server/service"
	"github.com/bpsoft/catalog/internal/server/store"
	pkgserver "github.com/bpsoft/catalog/pkg/server"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

func SetupDependencies(st store.ProductStore, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(st),
		Logger:         logger,
	}
}

// SetupHTTPHandler assembles the router with middleware and the /bp routes.
// The e2e tests mount this handler in-process instead of binding a port.
func SetupHTTPHandler(deps *Dependencies) http.Handler {
	mux := pkgserver.NewChiRouter(deps.Logger)
	rest.NewHandler(deps.ProductService, deps.Logger).RegisterRoutes(mux)
	return mux
}
