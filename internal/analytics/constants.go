// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

// Axis names used in query outputs.
const (
	EnergyTypeLabel         = "Energy Type"
	NetworkElementNameLabel = "Network element name"
	NetworkElementTypeLabel = "Network element type"
	YearLabel               = "Year"
	HourLabel               = "Hour"
	FuelLabel               = "Fuel"
	EmissionLabel           = "Emission"
	CostTypeLabel           = "Cost Type"
	AggregateNameLabel      = "Aggregate Name"
)

// Output column names.
const (
	TotalEnergyVolumeColumn  = "Total energy volume"
	TransmissionFeeColumn    = "Transmission fee total cost"
	NConsumersColumn         = "N_consumers"
	NConsumersParamColumn    = "n_consumers"
	TotalUsableAreaColumn    = "total_usable_area"
	CapexLabel               = "capex"
	OpexLabel                = "opex"
	attachmentAggregateLevel = "agg_name"
	attachmentStackLevel     = "lbs_name"
	attachmentColumnName     = "attached_tech"
)

// Level selects per-element or per-type reporting.
type Level string

const (
	LevelElement Level = "element"
	LevelType    Level = "type"
)
