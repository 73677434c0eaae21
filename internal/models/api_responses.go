package models

import (
	"time"

	"github.com/google/uuid"
)

// LookupResponse contains the result of a plate lookup. Found is false for a
// clean vehicle; Record is only set when Found is true.
type LookupResponse struct {
	Plate  string        `json:"plate"`
	Found  bool          `json:"found"`
	Record *RecallRecord `json:"record,omitempty"`
}

// StatsResponse wraps DashboardStats with snapshot metadata so clients can
// tell two dataset versions apart.
type StatsResponse struct {
	SnapshotID     uuid.UUID      `json:"snapshot_id"`
	GeneratedAt    time.Time      `json:"generated_at"`
	DatasetVersion string         `json:"dataset_version"`
	Stats          DashboardStats `json:"stats"`
}

// HealthResponse reports liveness and shard cache occupancy.
type HealthResponse struct {
	Status       string      `json:"status"`
	ShardsLoaded int         `json:"shards_loaded"`
	TotalRecords int         `json:"total_records"`
	Shards       []ShardInfo `json:"shards,omitempty"`
}
