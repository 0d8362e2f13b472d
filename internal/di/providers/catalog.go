package providers

import (
	"github.com/samber/do/v2"

	"github.com/booktrackapp/booktrack-server/internal/catalog"
	"github.com/booktrackapp/booktrack-server/internal/config"
	"github.com/booktrackapp/booktrack-server/internal/logger"
)

// CatalogClientHandle wraps the external catalog client.
type CatalogClientHandle struct {
	*catalog.Client
}

// ProvideCatalogClient provides the external book catalog client.
func ProvideCatalogClient(i do.Injector) (*CatalogClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := catalog.NewClient(catalog.Config{
		BaseURL:           cfg.Catalog.BaseURL,
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerMinute: cfg.Catalog.RequestsPerMinute,
	}, log.Logger)

	log.Info("Catalog client configured", "base_url", cfg.Catalog.BaseURL)

	return &CatalogClientHandle{Client: client}, nil
}
