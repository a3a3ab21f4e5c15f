// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package analytics turns raw optimizer result tables into analysis-ready
frames.

Four query types share the same conventions:

  - SourceQuery: generators and storages (energy sums, capacity, demand,
    fuel, emissions, capex/opex, state of charge, energy not served)
  - LineQuery: flows and transmission fee costs per line
  - LBSQuery: local balancing stack fractions and de-normalised capacity
  - ConsumerQuery: aggregated consumer fractions, counts and usage

# Naming convention

Methods taking a Selector return a Result: a single frame for One(name),
a name-keyed map for Many(names...) and All(). Unknown names yield an
empty frame, never an error.

# Level and filter

Source metrics are reported per element or per technology type (Level).
A Filter narrows the elements to those reachable from buses, stacks or
aggregated consumers. When a Filter has names but no kind, the names are
applied to the output rows instead.

# Years binding

When the optimizer aggregated several years into one, every year-indexed
output is remapped through the session's years binding before it is
returned. A year missing from the binding is a *frame.BindingKeyError.

Queries are immutable after construction and safe for concurrent use.
*/
package analytics
