// Package di provides dependency injection configuration for the BookTrack server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/booktrackapp/booktrack-server/internal/config"
	"github.com/booktrackapp/booktrack-server/internal/di/providers"
	"github.com/booktrackapp/booktrack-server/internal/logger"
	"github.com/booktrackapp/booktrack-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
// Command-line flag values are registered so ProvideConfig can apply them.
func NewContainer(flags config.Flags) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, flags)

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// External catalog
	do.Provide(injector, providers.ProvideCatalogClient)

	// Business services
	do.Provide(injector, providers.ProvidePropagator)
	do.Provide(injector, providers.ProvideBooklistService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideSearchService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CatalogClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.Propagator](injector)
	_ = do.MustInvoke[*service.BooklistService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
