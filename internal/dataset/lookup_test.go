package dataset

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recallboard/internal/testutil"
)

// recordingFetcher wraps a fetcher and records which shards were requested.
type recordingFetcher struct {
	inner Fetcher

	mu      sync.Mutex
	fetched []int
}

func (f *recordingFetcher) FetchShard(ctx context.Context, digit int) (io.ReadCloser, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, digit)
	f.mu.Unlock()
	return f.inner.FetchShard(ctx, digit)
}

func newTestStore(t *testing.T, rows map[int][][]string) (*Store, *recordingFetcher) {
	t.Helper()
	dir := testutil.ShardDir(t, rows)
	rec := &recordingFetcher{inner: &DirFetcher{Dir: dir}}
	return New(rec, nil), rec
}

func TestFindByPlate_FetchesOnlyMatchingShard(t *testing.T) {
	store, rec := newTestStore(t, map[int][][]string{
		7: {testutil.Row("1234567", "Toyota", "Corolla", 2018, "Brakes", "open")},
	})

	record, err := store.FindByPlate(context.Background(), "1234567")
	require.NoError(t, err)
	assert.Equal(t, "1234567", record.Plate)
	assert.Equal(t, "open", record.Status)

	assert.Equal(t, []int{7}, rec.fetched, "lookup must touch exactly shard 7")
}

func TestFindByPlate_InvalidPlateBeforeAnyFetch(t *testing.T) {
	store, rec := newTestStore(t, nil)

	for _, plate := range []string{"", "12345", "123456789", "12a4567"} {
		_, err := store.FindByPlate(context.Background(), plate)
		assert.ErrorIs(t, err, ErrInvalidPlate, "plate %q", plate)
	}
	assert.Empty(t, rec.fetched, "invalid plates must not trigger shard fetches")
}

func TestFindByPlate_NormalizesInput(t *testing.T) {
	store, _ := newTestStore(t, map[int][][]string{
		8: {testutil.Row("12345678", "Kia", "Sportage", 2021, "Airbags", "open")},
	})

	record, err := store.FindByPlate(context.Background(), " 123-45-678 ")
	require.NoError(t, err)
	assert.Equal(t, "12345678", record.Plate)
}

func TestFindByPlate_NotFound(t *testing.T) {
	store, rec := newTestStore(t, map[int][][]string{
		7: {testutil.Row("1111117", "Toyota", "Corolla", 2018, "Brakes", "open")},
	})

	_, err := store.FindByPlate(context.Background(), "9999997")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, []int{7}, rec.fetched, "a clean plate still scans its shard")
}

func TestFindByPlate_PrefersOpenRecall(t *testing.T) {
	store, _ := newTestStore(t, map[int][][]string{
		7: {
			testutil.Row("1234567", "Toyota", "Corolla", 2022, "Engine", "closed"),
			testutil.Row("1234567", "Toyota", "Corolla", 2015, "Brakes", "open"),
			testutil.Row("1234567", "Toyota", "Corolla", 2019, "Airbags", "closed"),
		},
	})

	record, err := store.FindByPlate(context.Background(), "1234567")
	require.NoError(t, err)
	assert.Equal(t, "open", record.Status)
	assert.Equal(t, 2015, record.Year, "the only open record wins despite older year")
}

func TestFindByPlate_NoOpenPicksNewestYear(t *testing.T) {
	store, _ := newTestStore(t, map[int][][]string{
		7: {
			testutil.Row("1234567", "Toyota", "Corolla", 2015, "Brakes", "closed"),
			testutil.Row("1234567", "Toyota", "Corolla", 2021, "Engine", "closed"),
			testutil.Row("1234567", "Toyota", "Corolla", 2018, "Airbags", "closed"),
		},
	})

	record, err := store.FindByPlate(context.Background(), "1234567")
	require.NoError(t, err)
	assert.Equal(t, 2021, record.Year)
}

func TestFindByPlate_MultipleOpenPicksNewestYear(t *testing.T) {
	store, _ := newTestStore(t, map[int][][]string{
		7: {
			testutil.Row("1234567", "Toyota", "Corolla", 2016, "Brakes", "open"),
			testutil.Row("1234567", "Toyota", "Corolla", 2020, "Engine", "open"),
		},
	})

	record, err := store.FindByPlate(context.Background(), "1234567")
	require.NoError(t, err)
	assert.Equal(t, 2020, record.Year)
	assert.Equal(t, "Engine", record.FaultCategory)
}

func TestFindByPlate_FullTieKeepsFirstRow(t *testing.T) {
	store, _ := newTestStore(t, map[int][][]string{
		7: {
			testutil.Row("1234567", "Toyota", "Corolla", 2020, "Brakes", "open"),
			testutil.Row("1234567", "Toyota", "Corolla", 2020, "Engine", "open"),
		},
	})

	record, err := store.FindByPlate(context.Background(), "1234567")
	require.NoError(t, err)
	assert.Equal(t, "Brakes", record.FaultCategory, "first row in shard order wins a full tie")
}

func TestFindByPlate_MutatingResultDoesNotTouchCache(t *testing.T) {
	store, _ := newTestStore(t, map[int][][]string{
		7: {testutil.Row("1234567", "Toyota", "Corolla", 2018, "Brakes", "open")},
	})

	first, err := store.FindByPlate(context.Background(), "1234567")
	require.NoError(t, err)
	first.Manufacturer = "mutated"

	second, err := store.FindByPlate(context.Background(), "1234567")
	require.NoError(t, err)
	assert.Equal(t, "Toyota", second.Manufacturer)
}

func TestFindByPlate_DatasetUnavailable(t *testing.T) {
	// Point at an empty directory: every shard open fails.
	store := New(&DirFetcher{Dir: t.TempDir()}, nil)

	_, err := store.FindByPlate(context.Background(), "1234567")
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
	assert.False(t, errors.Is(err, ErrRecordNotFound))
}
