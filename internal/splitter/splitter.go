// Package splitter partitions the raw government recall export into the ten
// shard files the lookup service reads. It replaces the one-off pandas
// script the dataset was originally prepared with: same partition rule
// (last digit of the plate), same output layout (data_0.csv .. data_9.csv,
// comma-separated UTF-8).
package splitter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"recallboard/internal/dataset"
	"recallboard/internal/models"
	"recallboard/internal/validation"
)

// Government export column names. The per-vehicle table carries the plate
// and a reference to the recall; the recall table carries the details.
const (
	colPlate         = "MISPAR_RECHEV"
	colRecallID      = "RECALL_ID"
	colTreatedDate   = "TAARICH_TIPUL"
	colManufacturer  = "TOZAR_TEUR"
	colModel         = "DEGEM"
	colYear          = "SHNAT_YITZUR"
	colFault         = "SUG_TAKALA"
	colFaultDesc     = "TEUR_TAKALA"
	colRepair        = "OFEN_TIPUL"
	colImporter      = "YEVUAN_TEUR"
)

// Options configures one split run.
type Options struct {
	// VehiclesPath is the per-vehicle export (plate -> recall reference).
	VehiclesPath string
	// RecallsPath is the recall-details export, joined on RECALL_ID.
	RecallsPath string
	// OutDir receives data_0.csv .. data_9.csv.
	OutDir string
	// Separator of the input files. The government export is pipe-separated.
	Separator rune
}

// Summary reports what a split run produced.
type Summary struct {
	Written         [dataset.NumShards]int
	SkippedVehicles int
	UnmatchedRefs   int
}

// Total returns the number of records written across all shards.
func (s *Summary) Total() int {
	total := 0
	for _, n := range s.Written {
		total += n
	}
	return total
}

type recallDetails struct {
	manufacturer string
	model        string
	year         string
	fault        string
	faultDesc    string
	repair       string
	importer     string
}

// Split joins the two exports and writes the shard files.
//
// Status policy: the per-vehicle export lists recall notices per plate; a
// record with a non-empty treatment date is closed, anything else is an open
// notice. Rows without a usable plate are skipped and counted; rows whose
// RECALL_ID has no match in the details export are kept with empty detail
// fields and counted, mirroring the left join the published dashboard used.
func Split(opts Options) (*Summary, error) {
	if opts.Separator == 0 {
		opts.Separator = '|'
	}

	recalls, err := readTable(opts.RecallsPath, opts.Separator)
	if err != nil {
		return nil, fmt.Errorf("read recalls export: %w", err)
	}
	details, err := indexRecalls(recalls)
	if err != nil {
		return nil, err
	}

	vehicles, err := readTable(opts.VehiclesPath, opts.Separator)
	if err != nil {
		return nil, fmt.Errorf("read vehicles export: %w", err)
	}
	plateIdx, ok := vehicles.index[colPlate]
	if !ok {
		return nil, fmt.Errorf("vehicles export has no %s column", colPlate)
	}
	refIdx, hasRef := vehicles.index[colRecallID]
	treatedIdx, hasTreated := vehicles.index[colTreatedDate]

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	writers, closeAll, err := openShardWriters(opts.OutDir)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	summary := &Summary{}
	for _, row := range vehicles.rows {
		plate := validation.NormalizePlate(cell(row, plateIdx))
		if !validation.ValidatePlate(plate) {
			summary.SkippedVehicles++
			continue
		}

		var d recallDetails
		if hasRef {
			var found bool
			d, found = details[cell(row, refIdx)]
			if !found {
				summary.UnmatchedRefs++
			}
		}

		status := models.StatusOpen
		if hasTreated && cell(row, treatedIdx) != "" {
			status = models.StatusClosed
		}

		year := d.year
		if _, err := strconv.Atoi(year); err != nil {
			year = "0"
		}

		digit := validation.ShardDigit(plate)
		record := []string{
			plate, d.manufacturer, d.model, year,
			d.fault, status, d.faultDesc, d.repair, d.importer,
		}
		if err := writers[digit].Write(record); err != nil {
			return nil, fmt.Errorf("write shard %d: %w", digit, err)
		}
		summary.Written[digit]++
	}

	for digit, w := range writers {
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flush shard %d: %w", digit, err)
		}
	}
	return summary, nil
}

func indexRecalls(t *table) (map[string]recallDetails, error) {
	idIdx, ok := t.index[colRecallID]
	if !ok {
		return nil, fmt.Errorf("recalls export has no %s column", colRecallID)
	}
	get := func(row []string, col string) string {
		idx, ok := t.index[col]
		if !ok {
			return ""
		}
		return cell(row, idx)
	}

	details := make(map[string]recallDetails, len(t.rows))
	for _, row := range t.rows {
		id := cell(row, idIdx)
		if id == "" {
			continue
		}
		details[id] = recallDetails{
			manufacturer: get(row, colManufacturer),
			model:        get(row, colModel),
			year:         get(row, colYear),
			fault:        get(row, colFault),
			faultDesc:    get(row, colFaultDesc),
			repair:       get(row, colRepair),
			importer:     get(row, colImporter),
		}
	}
	return details, nil
}

func openShardWriters(dir string) ([dataset.NumShards]*csv.Writer, func(), error) {
	var writers [dataset.NumShards]*csv.Writer
	files := make([]*os.File, 0, dataset.NumShards)
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for digit := 0; digit < dataset.NumShards; digit++ {
		file, err := os.Create(filepath.Join(dir, dataset.ShardFileName(digit)))
		if err != nil {
			closeAll()
			return writers, func() {}, fmt.Errorf("create shard %d: %w", digit, err)
		}
		files = append(files, file)

		w := csv.NewWriter(file)
		if err := w.Write(dataset.ShardHeader()); err != nil {
			closeAll()
			return writers, func() {}, fmt.Errorf("write shard %d header: %w", digit, err)
		}
		writers[digit] = w
	}
	return writers, closeAll, nil
}

type table struct {
	index map[string]int
	rows  [][]string
}

// readTable loads a whole export into memory. The files are UTF-8; older
// exports are Windows-1255 (Hebrew), so invalid UTF-8 falls back to a
// cp1255 decode, like the original preparation script.
func readTable(path string, sep rune) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		data, err = charmap.Windows1255.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode cp1255: %w", err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty export", path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	return &table{index: index, rows: rows[1:]}, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
