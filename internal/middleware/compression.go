// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package middleware

import (
	"compress/flate"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// CompressedTypes are the response content types worth encoding. The
// Prometheus exposition format is absent because promhttp negotiates its
// own gzip.
var CompressedTypes = []string{"application/json"}

var compressor = chimw.NewCompressor(flate.DefaultCompression, CompressedTypes...)

// Compression encodes JSON responses with gzip or deflate when the
// client accepts it.
func Compression(next http.Handler) http.Handler {
	return compressor.Handler(next)
}
