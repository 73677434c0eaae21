package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"recallboard/internal/dataset"
)

// Lookup outcome labels.
const (
	OutcomeFound        = "found"
	OutcomeNotFound     = "not_found"
	OutcomeInvalidPlate = "invalid_plate"
	OutcomeUnavailable  = "unavailable"
)

var (
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recallboard_plate_lookups_total",
			Help: "Total plate lookup count by outcome",
		},
		[]string{"outcome"},
	)

	shardLoadSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recallboard_shard_load_seconds",
			Help:    "Time spent fetching and parsing a shard file",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"shard", "result"},
	)

	skippedRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recallboard_shard_skipped_rows_total",
			Help: "Malformed rows skipped while parsing shard files",
		},
		[]string{"shard"},
	)

	shardRecordsDesc = prometheus.NewDesc(
		"recallboard_shard_records",
		"Parsed records per cached shard",
		[]string{"shard"},
		nil,
	)

	shardsCachedDesc = prometheus.NewDesc(
		"recallboard_shards_cached",
		"Number of shards currently cached (max 10)",
		nil,
		nil,
	)
)

// ShardCollector is a custom Prometheus collector that reads shard cache
// occupancy from the dataset store on each scrape.
type ShardCollector struct {
	store *dataset.Store
}

// Describe sends the metric descriptors to the channel.
func (c *ShardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- shardRecordsDesc
	ch <- shardsCachedDesc
}

// Collect reads the cached shards and emits per-shard record gauges.
func (c *ShardCollector) Collect(ch chan<- prometheus.Metric) {
	infos := c.store.CachedShards()
	ch <- prometheus.MustNewConstMetric(
		shardsCachedDesc, prometheus.GaugeValue, float64(len(infos)),
	)
	for _, info := range infos {
		ch <- prometheus.MustNewConstMetric(
			shardRecordsDesc, prometheus.GaugeValue,
			float64(info.Records), strconv.Itoa(info.Digit),
		)
	}
}

var initOnce sync.Once

// Init registers all collectors against the default registry.
// Must be called once at startup.
func Init(store *dataset.Store) {
	initOnce.Do(func() {
		prometheus.MustRegister(lookupsTotal, shardLoadSeconds, skippedRowsTotal)
		prometheus.MustRegister(&ShardCollector{store: store})
	})
}

// RecordLookup counts one plate lookup by outcome.
func RecordLookup(outcome string) {
	lookupsTotal.WithLabelValues(outcome).Inc()
}

// ShardLoadHook is a dataset.LoadHook feeding the shard load metrics.
func ShardLoadHook(digit int, _ int, skipped int, d time.Duration, err error) {
	shard := strconv.Itoa(digit)
	result := "ok"
	if err != nil {
		result = "error"
	}
	shardLoadSeconds.WithLabelValues(shard, result).Observe(d.Seconds())
	if skipped > 0 {
		skippedRowsTotal.WithLabelValues(shard).Add(float64(skipped))
	}
}
