// Package catalog defines the built-in legacy operation surface: the fixed
// v3-named operations, the v4 operations they delegate to, and the ordered
// translation rules between the two signatures. Rule sets are static
// configuration; the package builds them once per Registry call.
//
// Catalogs without custom rewrite logic can also be loaded from YAML, see
// Load and Parse.
package catalog

import (
	"slices"

	"github.com/appdeploykit/compat-framework/compat"
)

// Registry returns a registry holding the complete built-in catalog.
func Registry() *compat.Registry {
	return compat.NewRegistry(slices.Concat(
		fileOperations(),
		processOperations(),
		dialogOperations(),
		registryOperations(),
		systemOperations(),
	)...)
}
