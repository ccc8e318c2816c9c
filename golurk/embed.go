package golurk

import (
	"embed"
	"sync"
)

//go:embed data
var DataFiles embed.FS

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(DataFiles)
})

// DefaultCatalog is the catalog built from the data shipped with this package. It is only loaded once.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}
