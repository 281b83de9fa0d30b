// Package openapi embeds the OpenAPI document for the trip enrollment API.
// The HTTP server serves it at /openapi.yaml so the document and the running
// code ship together.
package openapi

import _ "embed"

// Document contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var Document []byte
