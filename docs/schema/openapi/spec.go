// Package openapi embeds the inventory OpenAPI components for runtime
// distribution.
package openapi

import _ "embed"

// InventorySpec contains the OpenAPI components for the chemical inventory.
//
//go:embed inventory.yaml
var InventorySpec []byte

// Spec returns a copy of the embedded inventory OpenAPI YAML so callers
// cannot mutate the embedded bytes.
func Spec() []byte {
	return append([]byte(nil), InventorySpec...)
}
