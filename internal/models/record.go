package models

import "time"

// Recall status values as stored in the shard files.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Canonical fault categories. Raw fault strings from the government export
// are mapped onto this set at load time; anything unrecognized becomes
// CategoryOther.
const (
	CategoryAirbags    = "Airbags"
	CategoryBrakes     = "Brakes"
	CategoryEngine     = "Engine"
	CategoryElectrical = "Electrical"
	CategoryFuel       = "Fuel"
	CategoryOther      = "Other"
)

// RecallRecord is one row of the recall dataset. A plate may appear in
// multiple records (recall history); records are immutable once loaded.
type RecallRecord struct {
	Plate            string `json:"plate"`
	Manufacturer     string `json:"manufacturer"`
	Model            string `json:"model"`
	Year             int    `json:"year"`
	FaultCategory    string `json:"fault_category"`
	Status           string `json:"status"`
	FaultDescription string `json:"fault_description"`
	RepairMethod     string `json:"repair_method"`
	ImporterContact  string `json:"importer_contact"`
}

// IsOpen reports whether the recall has not yet been attended to.
func (r RecallRecord) IsOpen() bool {
	return r.Status == StatusOpen
}

// ManufacturerYearCount is one cell of the recalls-over-time chart.
type ManufacturerYearCount struct {
	Manufacturer string `json:"manufacturer"`
	Year         int    `json:"year"`
	Count        int    `json:"count"`
}

// StatusBreakdown counts open vs closed recalls across the whole dataset.
type StatusBreakdown struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// FaultCount is one bar of the fault-type histogram.
type FaultCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ModelOpenCount is one entry of the top-open-models chart.
type ModelOpenCount struct {
	Model     string `json:"model"`
	OpenCount int    `json:"open_count"`
}

// DashboardStats holds every aggregate the dashboard renders. All slices are
// sorted deterministically so identical inputs serialize identically.
type DashboardStats struct {
	TotalRecords       int                     `json:"total_records"`
	ByManufacturerYear []ManufacturerYearCount `json:"by_manufacturer_year"`
	StatusBreakdown    StatusBreakdown         `json:"status_breakdown"`
	FaultDistribution  []FaultCount            `json:"fault_distribution"`
	TopOpenModels      []ModelOpenCount        `json:"top_open_models"`
}

// ShardInfo describes one cached shard for health and metrics reporting.
type ShardInfo struct {
	Digit       int       `json:"digit"`
	Records     int       `json:"records"`
	SkippedRows int       `json:"skipped_rows"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}
