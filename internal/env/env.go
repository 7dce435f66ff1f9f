// Package env detects the build environment. It is consulted only to pick
// default values for the cache policy and chunk-id mode when a caller does
// not set them explicitly.
package env

import "os"

const productionValue = "production"

// IsProduction reports whether the surrounding pipeline runs a production
// build. DOCUSAURUS_ENV wins over NODE_ENV so the Go layer can be forced
// independently of the node toolchain driving it.
func IsProduction() bool {
	if v := os.Getenv("DOCUSAURUS_ENV"); v != "" {
		return v == productionValue
	}
	return os.Getenv("NODE_ENV") == productionValue
}
