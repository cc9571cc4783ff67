// Package assets embeds the web client built by cmd/minify.
package assets

import _ "embed"

// Index is the single-page viewer client.
//
//go:embed index.html
var Index []byte
