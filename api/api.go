// Package api embeds the OpenAPI document for the Habit Trail API.
// The HTTP server serves it at /openapi.yaml.
package api

import _ "embed"

// OpenAPI holds the raw bytes of openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
