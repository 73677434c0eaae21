package splitter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"

	"recallboard/internal/dataset"
)

const vehiclesExport = `MISPAR_RECHEV|RECALL_ID|SUG_RECALL|TAARICH_PTICHA|TAARICH_TIPUL
1234567|R1|recall|2021-03-01|
7654321|R1|recall|2021-03-01|2021-06-15
1234560|R2|recall|2022-01-10|
not-a-plate|R2|recall|2022-01-10|
12345|R2|recall|2022-01-10|
9999990|R9|recall|2023-05-05|
`

const recallsExport = `RECALL_ID|TOZAR_TEUR|DEGEM|SHNAT_YITZUR|SUG_TAKALA|TEUR_TAKALA|OFEN_TIPUL|YEVUAN_TEUR
R1|Toyota|Corolla|2018|Brakes|brake line corrosion|replace line|UMI
R2|Mazda|3|2020|Airbags|inflator defect|replace inflator|Delek Motors
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runSplit(t *testing.T, vehicles, recalls string) (string, *Summary) {
	t.Helper()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "split_data")

	summary, err := Split(Options{
		VehiclesPath: writeFile(t, dir, "vehicles.csv", vehicles),
		RecallsPath:  writeFile(t, dir, "recalls.csv", recalls),
		OutDir:       outDir,
	})
	require.NoError(t, err)
	return outDir, summary
}

// loadShards runs the service-side loader over the splitter's output, so
// these tests catch any drift between writer and parser.
func loadShards(t *testing.T, outDir string) map[int]*dataset.ShardTable {
	t.Helper()
	store := dataset.New(&dataset.DirFetcher{Dir: outDir}, nil)
	tables, err := store.LoadAll(context.Background())
	require.NoError(t, err)

	byDigit := make(map[int]*dataset.ShardTable, len(tables))
	for _, table := range tables {
		byDigit[table.Digit] = table
	}
	return byDigit
}

func TestSplit_PartitionsByLastDigit(t *testing.T) {
	outDir, summary := runSplit(t, vehiclesExport, recallsExport)

	assert.Equal(t, 2, summary.SkippedVehicles, "bad plates are skipped")
	assert.Equal(t, 1, summary.UnmatchedRefs, "R9 has no details row")
	assert.Equal(t, 4, summary.Total())
	assert.Equal(t, 2, summary.Written[0], "plates 1234560 and 9999990")
	assert.Equal(t, 1, summary.Written[7])
	assert.Equal(t, 1, summary.Written[1])

	shards := loadShards(t, outDir)

	require.Len(t, shards[7].Records, 1)
	r := shards[7].Records[0]
	assert.Equal(t, "1234567", r.Plate)
	assert.Equal(t, "Toyota", r.Manufacturer)
	assert.Equal(t, "Corolla", r.Model)
	assert.Equal(t, 2018, r.Year)
	assert.Equal(t, "open", r.Status)

	require.Len(t, shards[1].Records, 1)
	assert.Equal(t, "closed", shards[1].Records[0].Status,
		"treated date marks the recall closed")
}

func TestSplit_UnmatchedRefKeepsRecord(t *testing.T) {
	outDir, _ := runSplit(t, vehiclesExport, recallsExport)
	shards := loadShards(t, outDir)

	// Shard 0 holds 1234560 (matched R2) and 9999990 (unmatched R9).
	require.Len(t, shards[0].Records, 2)
	idx := -1
	for i, r := range shards[0].Records {
		if r.Plate == "9999990" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	r := shards[0].Records[idx]
	assert.Empty(t, r.Manufacturer)
	assert.Equal(t, 0, r.Year)
	assert.Equal(t, "open", r.Status)
}

func TestSplit_EmptyShardsStillWritten(t *testing.T) {
	outDir, _ := runSplit(t, vehiclesExport, recallsExport)

	for digit := 0; digit < dataset.NumShards; digit++ {
		_, err := os.Stat(filepath.Join(outDir, dataset.ShardFileName(digit)))
		assert.NoError(t, err, "shard %d must exist even when empty", digit)
	}

	shards := loadShards(t, outDir)
	assert.Empty(t, shards[5].Records)
}

func TestSplit_CP1255Fallback(t *testing.T) {
	hebrewRecalls := `RECALL_ID|TOZAR_TEUR|DEGEM|SHNAT_YITZUR|SUG_TAKALA|TEUR_TAKALA|OFEN_TIPUL|YEVUAN_TEUR
R1|טויוטה|קורולה|2018|בלמים|שיתוך בצנרת בלמים|החלפת צנרת|יוניון מוטורס
`
	encoded, err := charmap.Windows1255.NewEncoder().String(hebrewRecalls)
	require.NoError(t, err)

	dir := t.TempDir()
	outDir := filepath.Join(dir, "split_data")
	summary, err := Split(Options{
		VehiclesPath: writeFile(t, dir, "vehicles.csv", "MISPAR_RECHEV|RECALL_ID\n1234567|R1\n"),
		RecallsPath:  writeFile(t, dir, "recalls.csv", encoded),
		OutDir:       outDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total())

	shards := loadShards(t, outDir)
	require.Len(t, shards[7].Records, 1)
	assert.Equal(t, "טויוטה", shards[7].Records[0].Manufacturer,
		"cp1255 input is transcoded to UTF-8 shards")
}

func TestSplit_MissingPlateColumn(t *testing.T) {
	dir := t.TempDir()
	_, err := Split(Options{
		VehiclesPath: writeFile(t, dir, "vehicles.csv", "SOMETHING|ELSE\na|b\n"),
		RecallsPath:  writeFile(t, dir, "recalls.csv", recallsExport),
		OutDir:       filepath.Join(dir, "out"),
	})
	assert.ErrorContains(t, err, "MISPAR_RECHEV")
}
