package providers

import (
	"github.com/samber/do/v2"

	"github.com/booktrackapp/booktrack-server/internal/logger"
	"github.com/booktrackapp/booktrack-server/internal/service"
)

// ProvidePropagator provides the book update propagator.
func ProvidePropagator(i do.Injector) (*service.Propagator, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPropagator(storeHandle.Store, log.Logger), nil
}

// ProvideBooklistService provides the booklist service.
func ProvideBooklistService(i do.Injector) (*service.BooklistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogHandle := do.MustInvoke[*CatalogClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBooklistService(storeHandle.Store, catalogHandle.Client, log.Logger), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	propagator := do.MustInvoke[*service.Propagator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, propagator, log.Logger), nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(storeHandle.Store, log.Logger), nil
}
