// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package engine

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/config"
	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/logging"
	"github.com/tomtom215/gridlens/internal/metrics"
	"github.com/tomtom215/gridlens/internal/network"
	"github.com/tomtom215/gridlens/internal/results"
)

// Options describe one optimizer run and how it was sampled.
type Options struct {
	SourcePath            string
	ResultPath            string
	ResultFormat          string
	ScenarioName          string
	DiscountRate          []float64 `validate:"omitempty,dive,finite"`
	YearSample            []int     `validate:"omitempty,ascending,dive,min=0"`
	HourSample            []int     `validate:"omitempty,dive,min=0"`
	UseHourlyScale        bool
	GeneratorCapacityCost string
	NYearsAggregation     int
}

// OptionsFromConfig maps the engine configuration section onto Options.
// An empty scenario name defaults to the result directory name.
func OptionsFromConfig(cfg config.EngineConfig) Options {
	scenario := cfg.ScenarioName
	if scenario == "" {
		scenario = filepath.Base(filepath.Clean(cfg.ResultPath))
	}
	return Options{
		SourcePath:            cfg.SourcePath,
		ResultPath:            cfg.ResultPath,
		ResultFormat:          cfg.ResultFormat,
		ScenarioName:          scenario,
		DiscountRate:          cfg.DiscountRate,
		YearSample:            cfg.YearSample,
		HourSample:            cfg.HourSample,
		UseHourlyScale:        cfg.UseHourlyScale,
		GeneratorCapacityCost: cfg.GeneratorCapacityCost,
		NYearsAggregation:     cfg.NYearsAggregation,
	}
}

// Session is an immutable analysis session over one optimizer run.
type Session struct {
	id           string
	opts         Options
	capacityCost analytics.CapacityCost
	loadedAt     time.Time

	net       *network.Model
	results   *results.Set
	objective float64

	yearSample   []int
	hourSample   []int
	discountRate []float64
	hourlyScale  float64
	binding      *frame.Binding

	sources   *analytics.SourceQuery
	lines     *analytics.LineQuery
	consumers *analytics.ConsumerQuery
	lbs       *analytics.LBSQuery
}

// FromConfig loads a session described by the engine configuration.
func FromConfig(ctx context.Context, cfg config.EngineConfig, r results.TableReader) (*Session, error) {
	return New(ctx, OptionsFromConfig(cfg), r)
}

// New validates opts, loads the network definition and result files, and
// builds the query objects.
func New(ctx context.Context, opts Options, r results.TableReader) (*Session, error) {
	start := time.Now()
	defer func() {
		metrics.SessionLoadDuration.Observe(time.Since(start).Seconds())
	}()

	if _, err := validateOptions(opts); err != nil {
		metrics.SessionLoads.WithLabelValues("invalid").Inc()
		return nil, err
	}

	net, err := network.Load(opts.SourcePath)
	if err != nil {
		metrics.SessionLoads.WithLabelValues("error").Inc()
		return nil, err
	}

	format := opts.ResultFormat
	if format == "" {
		format = results.FormatCSV
	}
	res, err := results.Load(ctx, r, opts.ResultPath, format)
	if err != nil {
		metrics.SessionLoads.WithLabelValues("error").Inc()
		return nil, err
	}
	objective, err := results.LoadObjective(ctx, r, opts.ResultPath, format)
	if err != nil {
		metrics.SessionLoads.WithLabelValues("error").Inc()
		return nil, err
	}

	s, err := NewFromData(opts, net, res, objective)
	if err != nil {
		metrics.SessionLoads.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.SessionLoads.WithLabelValues("success").Inc()
	metrics.RecordSessionLoaded(res.Summary())

	logging.Ctx(ctx).Info().
		Str("session_id", s.id).
		Str("scenario", s.opts.ScenarioName).
		Str("capacity_cost", string(s.capacityCost)).
		Int("years", len(s.yearSample)).
		Int("hours", len(s.hourSample)).
		Float64("hourly_scale", s.hourlyScale).
		Dur("duration", time.Since(start)).
		Msg("Session loaded")

	return s, nil
}

// NewFromData builds a session from an in-memory network and results.
func NewFromData(opts Options, net *network.Model, res *results.Set, objective float64) (*Session, error) {
	capacityCost, err := validateOptions(opts)
	if err != nil {
		return nil, err
	}
	if net == nil {
		return nil, fmt.Errorf("network definition is required")
	}
	if res == nil {
		res = results.NewSet()
	}

	constants := net.Constants()
	s := &Session{
		id:           uuid.New().String(),
		opts:         opts,
		capacityCost: capacityCost,
		loadedAt:     time.Now().UTC(),
		net:          net,
		results:      res,
		objective:    objective,
		yearSample:   defaultSample(opts.YearSample, constants.NYears),
		hourSample:   defaultSample(opts.HourSample, constants.NHours),
		hourlyScale:  1.0,
	}
	if opts.UseHourlyScale && len(s.hourSample) > 0 {
		s.hourlyScale = float64(constants.NHours) / float64(len(s.hourSample))
	}

	if opts.NYearsAggregation > 1 {
		s.binding = YearsBinding(constants.NYears, opts.NYearsAggregation, s.yearSample)
		s.yearSample = s.binding.Keys()
		if s.net, err = net.AggregateYears(s.binding.Years()); err != nil {
			return nil, fmt.Errorf("aggregate network years: %w", err)
		}
		net = s.net
	}

	s.discountRate = opts.DiscountRate
	if len(s.discountRate) == 0 {
		s.discountRate = make([]float64, len(s.yearSample))
	}

	s.sources, err = analytics.NewSourceQuery(analytics.SourceParams{
		Network:      net,
		Generators:   res.Generators,
		Storages:     res.Storages,
		Buses:        res.Buses,
		YearSample:   s.yearSample,
		DiscountRate: s.discountRate,
		HourlyScale:  s.hourlyScale,
		HourSample:   s.hourSample,
		CapacityCost: capacityCost,
		YearsBinding: s.binding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build source query: %w", err)
	}

	s.lines = analytics.NewLineQuery(analytics.LineParams{
		Network:      net,
		Lines:        res.Lines,
		HourSample:   s.hourSample,
		HourlyScale:  s.hourlyScale,
		YearsBinding: s.binding,
	})
	s.consumers = analytics.NewConsumerQuery(analytics.ConsumerParams{
		Network:      net,
		Fractions:    res.Fractions,
		YearsBinding: s.binding,
	})
	s.lbs = analytics.NewLBSQuery(analytics.LBSParams{
		Network:      net,
		Fractions:    res.Fractions,
		Generators:   res.Generators,
		Storages:     res.Storages,
		YearsBinding: s.binding,
	})

	return s, nil
}

// YearsBinding maps reduced year i to the calendar year year_sample[0]+i*n
// for every block that starts before nYears.
func YearsBinding(nYears, n int, yearSample []int) *frame.Binding {
	first := 0
	if len(yearSample) > 0 {
		first = yearSample[0]
	}
	m := make(map[int]int)
	for i, year := 0, first; year < nYears; i, year = i+1, year+n {
		m[i] = year
	}
	return frame.NewBinding(m)
}

// defaultSample returns sample, or 0..n-1 when sample is empty.
func defaultSample(sample []int, n int) []int {
	if len(sample) > 0 {
		return append([]int(nil), sample...)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// ID identifies this session. Cache keys are scoped by it.
func (s *Session) ID() string { return s.id }

// LoadedAt is when the session was built.
func (s *Session) LoadedAt() time.Time { return s.loadedAt }

// Network returns the network definition.
func (s *Session) Network() *network.Model { return s.net }

// ScenarioName returns the scenario label.
func (s *Session) ScenarioName() string { return s.opts.ScenarioName }

// Results returns the raw result tables.
func (s *Session) Results() *results.Set { return s.results }

// GeneratorCapacityCost returns the capacity cost label.
func (s *Session) GeneratorCapacityCost() analytics.CapacityCost { return s.capacityCost }

func (s *Session) SourceParams() *analytics.SourceQuery { return s.sources }

func (s *Session) LineParams() *analytics.LineQuery { return s.lines }

func (s *Session) AggregatedConsumerParams() *analytics.ConsumerQuery { return s.consumers }

func (s *Session) LBSParams() *analytics.LBSQuery { return s.lbs }

// ObjectiveFunctionValue is NaN when the run did not write one.
func (s *Session) ObjectiveFunctionValue() float64 { return s.objective }

// YearsBinding is nil unless years were aggregated.
func (s *Session) YearsBinding() *frame.Binding { return s.binding }

func (s *Session) YearSample() []int { return s.yearSample }

func (s *Session) HourSample() []int { return s.hourSample }

func (s *Session) HourlyScale() float64 { return s.hourlyScale }

// HasObjective reports whether an objective value was loaded.
func (s *Session) HasObjective() bool { return !math.IsNaN(s.objective) }

// Holder holds the current session for concurrent readers.
type Holder struct {
	current atomic.Pointer[Session]
}

// Load returns the current session, or nil before the first Store.
func (h *Holder) Load() *Session { return h.current.Load() }

// Store replaces the current session.
func (h *Holder) Store(s *Session) { h.current.Store(s) }
