// Package api carries the OpenAPI description of the REST binding. The
// document is embedded so servers can validate requests against it without
// shipping extra files.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
