// Package dataset loads, caches, and queries the sharded recall dataset.
//
// The dataset is ten static CSV files, data_0.csv through data_9.csv,
// partitioned by the last digit of the plate number. Each shard is fetched
// lazily on first use, parsed into memory, and cached for the lifetime of
// the process; the files are a read-only snapshot of a dated government
// export, so the cache is never invalidated.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"recallboard/internal/models"
)

// NumShards is the number of dataset partitions (one per last digit).
const NumShards = 10

// ShardTable is the parsed, immutable contents of one shard file.
type ShardTable struct {
	Digit       int
	Records     []models.RecallRecord
	SkippedRows int
	Fingerprint uint64
	LoadedAt    time.Time
}

// LoadHook observes a completed shard load attempt. Used to feed metrics
// without the dataset package depending on the metrics registry.
type LoadHook func(digit int, records, skipped int, d time.Duration, err error)

// Store owns the shard cache. Concurrent loads of the same shard may race;
// that is benign because every loader parses identical bytes and
// last-writer-wins leaves an equivalent table in the cache.
type Store struct {
	fetcher  Fetcher
	faultMap func(string) string

	// OnLoad, if set, is invoked after every shard load attempt.
	OnLoad LoadHook

	mu     sync.RWMutex
	shards map[int]*ShardTable
}

// New creates a store over the given fetcher. faultMap normalizes raw fault
// strings at parse time; nil keeps the raw values.
func New(fetcher Fetcher, faultMap func(string) string) *Store {
	if faultMap == nil {
		faultMap = func(raw string) string { return raw }
	}
	return &Store{
		fetcher:  fetcher,
		faultMap: faultMap,
		shards:   make(map[int]*ShardTable),
	}
}

// LoadShard returns the table for one shard, fetching and parsing it on
// first use. Fetch or parse failures are reported as ErrDatasetUnavailable.
func (s *Store) LoadShard(ctx context.Context, digit int) (*ShardTable, error) {
	if digit < 0 || digit >= NumShards {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShard, digit)
	}

	s.mu.RLock()
	table, ok := s.shards[digit]
	s.mu.RUnlock()
	if ok {
		return table, nil
	}

	start := time.Now()
	table, err := s.loadShard(ctx, digit)
	if s.OnLoad != nil {
		records, skipped := 0, 0
		if table != nil {
			records, skipped = len(table.Records), table.SkippedRows
		}
		s.OnLoad(digit, records, skipped, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.shards[digit] = table
	s.mu.Unlock()

	slog.Info("shard loaded",
		"shard", digit,
		"records", len(table.Records),
		"skipped_rows", table.SkippedRows,
		"fingerprint", fmt.Sprintf("%016x", table.Fingerprint),
		"duration", time.Since(start),
	)
	return table, nil
}

func (s *Store) loadShard(ctx context.Context, digit int) (*ShardTable, error) {
	body, err := s.fetcher.FetchShard(ctx, digit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	defer body.Close()

	table, err := parseShard(body, digit, s.faultMap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	return table, nil
}

// LoadAll ensures every shard is cached, fetching missing ones concurrently.
// Fails if any shard cannot be loaded; partial dashboards are not served.
func (s *Store) LoadAll(ctx context.Context) ([]*ShardTable, error) {
	g, ctx := errgroup.WithContext(ctx)
	for digit := 0; digit < NumShards; digit++ {
		g.Go(func() error {
			_, err := s.LoadShard(ctx, digit)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	tables := make([]*ShardTable, NumShards)
	for digit := 0; digit < NumShards; digit++ {
		tables[digit] = s.shards[digit]
	}
	return tables, nil
}

// CachedShards reports the currently cached shards, ordered by digit.
func (s *Store) CachedShards() []models.ShardInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]models.ShardInfo, 0, len(s.shards))
	for digit := 0; digit < NumShards; digit++ {
		table, ok := s.shards[digit]
		if !ok {
			continue
		}
		infos = append(infos, models.ShardInfo{
			Digit:       digit,
			Records:     len(table.Records),
			SkippedRows: table.SkippedRows,
			Fingerprint: fmt.Sprintf("%016x", table.Fingerprint),
			LoadedAt:    table.LoadedAt,
		})
	}
	return infos
}
