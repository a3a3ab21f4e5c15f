// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package results

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/logging"
)

// Result file formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Row index names given to loaded tables.
const (
	IndexYear = "Year"
	IndexHour = "Hour"
)

// yearCategories are indexed by year; every other category is hourly.
var yearCategories = map[string]bool{
	CategoryCapacity:    true,
	CategoryGlobalCapex: true,
	CategoryLocalCapex:  true,
	CategoryFraction:    true,
}

// TableReader reads one result file into a frame.
type TableReader interface {
	ReadTable(ctx context.Context, path string) (*frame.Frame, error)
}

// Load reads every result group under dir. A missing group directory
// yields an empty group. Line file names store "->" as "-".
func Load(ctx context.Context, r TableReader, dir, format string) (*Set, error) {
	ext, err := extension(format)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("result directory %s: %w", dir, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("result path %s is not a directory", dir)
	}

	set := NewSet()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, group := range Groups {
		files, err := listGroup(filepath.Join(dir, group), ext)
		if err != nil {
			return nil, err
		}
		tables := set.Group(group)
		for _, rf := range files {
			name := rf.name
			if group == GroupLines {
				name = strings.ReplaceAll(name, "-", "->")
			}
			g.Go(func() error {
				f, err := r.ReadTable(gctx, rf.path)
				if err != nil {
					return fmt.Errorf("%s/%s/%s: %w", group, rf.category, rf.name, err)
				}
				f = nameIndex(f, rf.category)

				mu.Lock()
				tables.Put(rf.category, name, f)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("path", dir).
		Str("format", format).
		Interface("tables", set.Summary()).
		Msg("Results loaded")

	return set, nil
}

// LoadObjective reads the objective function value at the root of dir.
// A missing file yields NaN.
func LoadObjective(ctx context.Context, r TableReader, dir, format string) (float64, error) {
	ext, err := extension(format)
	if err != nil {
		return math.NaN(), err
	}
	path := filepath.Join(dir, ObjectiveFunctionFile+ext)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logging.Ctx(ctx).Warn().Str("path", path).Msg("Objective function file not found")
		return math.NaN(), nil
	}

	f, err := r.ReadTable(ctx, path)
	if err != nil {
		return math.NaN(), fmt.Errorf("failed to read objective function value: %w", err)
	}
	if f.Len() == 0 || f.Width() == 0 {
		return math.NaN(), fmt.Errorf("objective function file %s is empty", path)
	}
	return f.At(0, 0), nil
}

func extension(format string) (string, error) {
	switch format {
	case FormatCSV:
		return ".csv", nil
	case FormatParquet:
		return ".parquet", nil
	}
	return "", fmt.Errorf("unsupported result format %q", format)
}

type resultFile struct {
	category string
	name     string
	path     string
}

// listGroup lists category/name files of one group directory.
func listGroup(groupDir, ext string) ([]resultFile, error) {
	categories, err := os.ReadDir(groupDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", groupDir, err)
	}

	var out []resultFile
	for _, c := range categories {
		if !c.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(groupDir, c.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", c.Name(), err)
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ext {
				continue
			}
			out = append(out, resultFile{
				category: c.Name(),
				name:     strings.TrimSuffix(e.Name(), ext),
				path:     filepath.Join(groupDir, c.Name(), e.Name()),
			})
		}
	}
	return out, nil
}

// nameIndex renames the first index level after the category's axis.
func nameIndex(f *frame.Frame, category string) *frame.Frame {
	names := append([]string(nil), f.IndexNames...)
	if len(names) == 0 {
		return f
	}
	if yearCategories[category] {
		names[0] = IndexYear
	} else {
		names[0] = IndexHour
	}
	return f.Rename(names, f.ColumnName)
}
