package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"recallboard/internal/models"
	"recallboard/internal/validation"
)

// Canonical shard schema, in file order.
var shardColumns = []string{
	"plate",
	"manufacturer",
	"model",
	"year",
	"fault_category",
	"status",
	"fault_description",
	"repair_method",
	"importer_contact",
}

// parseShard reads one shard file. Rows that don't fit the schema (wrong
// column count, bad plate, unparsable year, unknown status) are skipped and
// counted rather than failing the load; the upstream export has minor
// quality issues and one bad row should not take a tenth of the dataset
// offline. A missing or wrong header does fail the load: that means we are
// looking at the wrong file entirely.
func parseShard(r io.Reader, digit int, faultMap func(string) string) (*ShardTable, error) {
	hasher := xxh3.New()
	reader := csv.NewReader(io.TeeReader(r, hasher))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("shard %d: empty file", digit)
		}
		return nil, fmt.Errorf("shard %d: read header: %w", digit, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, fmt.Errorf("shard %d: %w", digit, err)
	}

	table := &ShardTable{Digit: digit}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv-level damage on a single row (bare quote etc).
			table.SkippedRows++
			continue
		}

		record, ok := parseRow(row, faultMap)
		if !ok {
			table.SkippedRows++
			continue
		}
		table.Records = append(table.Records, record)
	}

	table.Fingerprint = hasher.Sum64()
	table.LoadedAt = time.Now()
	return table, nil
}

func checkHeader(header []string) error {
	if len(header) != len(shardColumns) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(shardColumns))
	}
	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(name), shardColumns[i]) {
			return fmt.Errorf("header column %d is %q, want %q", i, name, shardColumns[i])
		}
	}
	return nil
}

func parseRow(row []string, faultMap func(string) string) (models.RecallRecord, bool) {
	if len(row) != len(shardColumns) {
		return models.RecallRecord{}, false
	}

	plate := validation.NormalizePlate(row[0])
	if !validation.ValidatePlate(plate) {
		return models.RecallRecord{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return models.RecallRecord{}, false
	}

	var status string
	switch strings.ToLower(strings.TrimSpace(row[5])) {
	case models.StatusOpen:
		status = models.StatusOpen
	case models.StatusClosed:
		status = models.StatusClosed
	default:
		return models.RecallRecord{}, false
	}

	return models.RecallRecord{
		Plate:            plate,
		Manufacturer:     strings.TrimSpace(row[1]),
		Model:            strings.TrimSpace(row[2]),
		Year:             year,
		FaultCategory:    faultMap(row[4]),
		Status:           status,
		FaultDescription: strings.TrimSpace(row[6]),
		RepairMethod:     strings.TrimSpace(row[7]),
		ImporterContact:  strings.TrimSpace(row[8]),
	}, true
}

// ShardHeader returns the canonical header line for shard files. Used by the
// splitter so the writer and the parser cannot drift apart.
func ShardHeader() []string {
	out := make([]string, len(shardColumns))
	copy(out, shardColumns)
	return out
}
