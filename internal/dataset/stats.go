package dataset

import (
	"context"
	"fmt"
	"sort"

	"github.com/zeebo/xxh3"

	"recallboard/internal/models"
)

// StatsOptions tunes the dashboard aggregates.
type StatsOptions struct {
	// TimelineFrom/TimelineTo bound the by-manufacturer-year counts.
	TimelineFrom int
	TimelineTo   int
	// TopModels caps the top-open-models list.
	TopModels int
}

// DefaultStatsOptions matches the published dashboard: a 2000-2025 timeline
// and a top-10 model list.
func DefaultStatsOptions() StatsOptions {
	return StatsOptions{TimelineFrom: 2000, TimelineTo: 2025, TopModels: 10}
}

// Statistics loads every shard (concurrently, for the ones not yet cached)
// and computes the dashboard aggregates. It also returns a dataset version:
// a digest over the per-shard content fingerprints.
func (s *Store) Statistics(ctx context.Context, opts StatsOptions) (models.DashboardStats, string, error) {
	tables, err := s.LoadAll(ctx)
	if err != nil {
		return models.DashboardStats{}, "", err
	}
	return ComputeStatistics(tables, opts), datasetVersion(tables), nil
}

// ComputeStatistics tallies the dashboard aggregates over the given tables.
// Pure: identical tables always produce an identical, identically-ordered
// result.
func ComputeStatistics(tables []*ShardTable, opts StatsOptions) models.DashboardStats {
	type mfrYear struct {
		manufacturer string
		year         int
	}

	var stats models.DashboardStats
	byMfrYear := make(map[mfrYear]int)
	byFault := make(map[string]int)
	openByModel := make(map[string]int)

	for _, table := range tables {
		if table == nil {
			continue
		}
		for _, r := range table.Records {
			stats.TotalRecords++

			if r.Year >= opts.TimelineFrom && r.Year <= opts.TimelineTo {
				byMfrYear[mfrYear{r.Manufacturer, r.Year}]++
			}
			byFault[r.FaultCategory]++

			if r.IsOpen() {
				stats.StatusBreakdown.Open++
				openByModel[r.Model]++
			} else {
				stats.StatusBreakdown.Closed++
			}
		}
	}

	stats.ByManufacturerYear = make([]models.ManufacturerYearCount, 0, len(byMfrYear))
	for key, count := range byMfrYear {
		stats.ByManufacturerYear = append(stats.ByManufacturerYear, models.ManufacturerYearCount{
			Manufacturer: key.manufacturer,
			Year:         key.year,
			Count:        count,
		})
	}
	sort.Slice(stats.ByManufacturerYear, func(i, j int) bool {
		a, b := stats.ByManufacturerYear[i], stats.ByManufacturerYear[j]
		if a.Manufacturer != b.Manufacturer {
			return a.Manufacturer < b.Manufacturer
		}
		return a.Year < b.Year
	})

	stats.FaultDistribution = make([]models.FaultCount, 0, len(byFault))
	for category, count := range byFault {
		stats.FaultDistribution = append(stats.FaultDistribution, models.FaultCount{
			Category: category,
			Count:    count,
		})
	}
	sort.Slice(stats.FaultDistribution, func(i, j int) bool {
		a, b := stats.FaultDistribution[i], stats.FaultDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})

	stats.TopOpenModels = topOpenModels(openByModel, opts.TopModels)
	return stats
}

// topOpenModels ranks models by open-recall count, descending, ties broken
// alphabetically, truncated to limit.
func topOpenModels(openByModel map[string]int, limit int) []models.ModelOpenCount {
	ranked := make([]models.ModelOpenCount, 0, len(openByModel))
	for model, count := range openByModel {
		ranked = append(ranked, models.ModelOpenCount{Model: model, OpenCount: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].OpenCount != ranked[j].OpenCount {
			return ranked[i].OpenCount > ranked[j].OpenCount
		}
		return ranked[i].Model < ranked[j].Model
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// datasetVersion digests the per-shard fingerprints into one hex token.
func datasetVersion(tables []*ShardTable) string {
	hasher := xxh3.New()
	for _, table := range tables {
		var fp uint64
		if table != nil {
			fp = table.Fingerprint
		}
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(fp >> (8 * i))
		}
		hasher.Write(buf[:])
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}
