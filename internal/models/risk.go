package models

import (
	"time"

	"github.com/google/uuid"
)

// RawObservation is a single point-in-time set of environmental measurements
// for one county. It is constructed fresh for every scoring run and never
// mutated afterwards.
type RawObservation struct {
	// Month is the calendar month (1-12). Reserved for seasonal adjustment.
	Month int `json:"month"`
	// HeatIndexF is the heat index in degrees Fahrenheit.
	HeatIndexF float64 `json:"heat_index_f"`
	// Rain24hIn is rainfall over the trailing 24 hours, in inches.
	Rain24hIn float64 `json:"rain_24h_in"`
	// WindSustMPH is the sustained wind speed in miles per hour.
	WindSustMPH float64 `json:"wind_sust_mph"`
	// Tropical indicates an active tropical system affecting the area.
	Tropical bool `json:"tropical_flag"`
	// PopDensity is population density in people per square mile.
	PopDensity float64 `json:"pop_density"`
}

// RiskState is the discrete insurer-facing risk label derived from (CAI, AV).
type RiskState string

const (
	StateStable       RiskState = "Stable"
	StateBuilding     RiskState = "Building"
	StateHighRiskAccl RiskState = "High Risk + Accelerating"
	StateMomentum     RiskState = "Momentum Surge"
	StateSurgeRisk    RiskState = "Surge Risk"
)

// Score keys used in the report/snapshot score maps.
const (
	ScoreWPS = "WPS"
	ScoreISS = "ISS"
	ScoreDAS = "DAS"
	ScoreCAI = "CAI"
	ScoreSTS = "STS"
	ScoreVEX = "VEX"
	ScoreFPC = "FPC"
	ScoreAV  = "AV"
)

// CountyReport is the full composite scoring output for one county, suitable
// for serving directly or persisting as a snapshot.
type CountyReport struct {
	Region     string             `json:"region"`
	County     string             `json:"county"`
	ComputedAt time.Time          `json:"computed_at"`
	Scores     map[string]float64 `json:"scores"`
	State      RiskState          `json:"state"`
	// TrendComplete is false when the CAI history was too short for the
	// delta/range calculations and the trend signals fell back to their
	// lowest bands.
	TrendComplete bool `json:"trend_complete"`
}

// Snapshot is the persisted form of a CountyReport. Append-only; one row per
// county per collection run.
type Snapshot struct {
	RunID        uuid.UUID          `json:"run_id" db:"run_id"`
	SnapshotAt   time.Time          `json:"snapshot_at" db:"snapshot_at"`
	Region       string             `json:"region" db:"region"`
	County       string             `json:"county" db:"county"`
	Scores       map[string]float64 `json:"scores" db:"scores"`
	StateLabel   RiskState          `json:"state_label" db:"state_label"`
	ModelVersion string             `json:"model_version" db:"model_version"`
}

// StatusTier is the composite daily status for a coordinate.
type StatusTier string

const (
	TierGreen  StatusTier = "GREEN"
	TierYellow StatusTier = "YELLOW"
	TierOrange StatusTier = "ORANGE"
	TierRed    StatusTier = "RED"
)

// DailyStatus is the per-request daily risk status. It is ephemeral and never
// persisted.
type DailyStatus struct {
	Status StatusTier `json:"status"`
	Score  int        `json:"score"`
	// Drivers are human-readable explanations, in contribution order.
	Drivers []string `json:"drivers"`
	// AddItems is the recommended gear list, deduplicated in first-seen order.
	AddItems []string `json:"add_items"`
}
