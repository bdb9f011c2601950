// Package data holds the storefront catalog shipped with the binary.
package data

import _ "embed"

//go:embed catalog.yaml
var Catalog []byte
