// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func payloadHandler(contentType, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(body))
	})
}

func TestCompression(t *testing.T) {
	body := strings.Repeat(`{"Year":0,"g1":1.5},`, 100)

	tests := []struct {
		name           string
		contentType    string
		acceptEncoding string
		wantGzip       bool
	}{
		{name: "json with gzip", contentType: "application/json", acceptEncoding: "gzip", wantGzip: true},
		{name: "no accept header", contentType: "application/json", acceptEncoding: "", wantGzip: false},
		{name: "unsupported encoding", contentType: "application/json", acceptEncoding: "br", wantGzip: false},
		{name: "exposition format", contentType: "text/plain; version=0.0.4", acceptEncoding: "gzip", wantGzip: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/lines/flow", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			Compression(payloadHandler(tt.contentType, body)).ServeHTTP(rec, req)

			gotGzip := rec.Header().Get("Content-Encoding") == "gzip"
			if gotGzip != tt.wantGzip {
				t.Fatalf("gzip = %v, want %v", gotGzip, tt.wantGzip)
			}

			got := rec.Body.Bytes()
			if gotGzip {
				zr, err := gzip.NewReader(rec.Body)
				if err != nil {
					t.Fatalf("gzip.NewReader() error = %v", err)
				}
				defer zr.Close()
				if got, err = io.ReadAll(zr); err != nil {
					t.Fatalf("read gzip body: %v", err)
				}
				if !strings.Contains(rec.Header().Get("Vary"), "Accept-Encoding") {
					t.Error("Vary: Accept-Encoding should be set on encoded responses")
				}
			}
			if string(got) != body {
				t.Error("body does not round-trip")
			}
		})
	}
}
