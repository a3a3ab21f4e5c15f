// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package network

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// Decode reads a JSON network definition and builds a Model from it.
func Decode(r io.Reader) (*Model, error) {
	var def Definition
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode network definition: %w", err)
	}
	return NewModel(def)
}

// Load reads the network definition stored at path.
func Load(path string) (*Model, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open network definition: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
