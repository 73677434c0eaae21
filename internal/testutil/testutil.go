// Package testutil provides test utilities and helpers.
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// ShardHeader is the canonical shard header used by fixture files.
var ShardHeader = []string{
	"plate", "manufacturer", "model", "year",
	"fault_category", "status",
	"fault_description", "repair_method", "importer_contact",
}

// Row builds one well-formed shard row.
func Row(plate, manufacturer, model string, year int, fault, status string) []string {
	return []string{
		plate, manufacturer, model, strconv.Itoa(year),
		fault, status,
		"fault description", "visit the importer garage", "importer hotline 03-0000000",
	}
}

// ShardDir writes a complete shard directory (data_0.csv .. data_9.csv) into
// a temp dir and returns its path. Digits missing from rows get a
// header-only file so the full-dashboard load path works.
func ShardDir(t *testing.T, rows map[int][][]string) string {
	t.Helper()

	dir := t.TempDir()
	for digit := 0; digit < 10; digit++ {
		WriteShard(t, dir, digit, rows[digit])
	}
	return dir
}

// WriteShard writes a single shard file with the canonical header and the
// given rows.
func WriteShard(t *testing.T, dir string, digit int, rows [][]string) {
	t.Helper()

	path := filepath.Join(dir, "data_"+strconv.Itoa(digit)+".csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create shard %d: %v", digit, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(ShardHeader); err != nil {
		t.Fatalf("write shard %d header: %v", digit, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("write shard %d row: %v", digit, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush shard %d: %v", digit, err)
	}
}

// WriteRawShard writes a shard file verbatim, for malformed-content cases
// the csv writer would refuse to produce.
func WriteRawShard(t *testing.T, dir string, digit int, content string) {
	t.Helper()

	path := filepath.Join(dir, "data_"+strconv.Itoa(digit)+".csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write raw shard %d: %v", digit, err)
	}
}
