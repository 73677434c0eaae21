package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recallboard/internal/ckan"
)

func newFetchCmd() *cobra.Command {
	var (
		resourceID string
		out        string
		maxRows    int
		baseURL    string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download one datastore resource to a pipe-separated CSV",
		Long: `Pages through a data.gov.il datastore resource and writes it as a
pipe-separated CSV, the same shape as the bulk export "split" consumes.

Known resources:
  recalls     ` + ckan.RecallsResourceID + `
  vehicles    ` + ckan.PrivateVehiclesResourceID + `
  unattended  ` + ckan.UnattendedRecallsResourceID,
		RunE: func(cmd *cobra.Command, args []string) error {
			rid := resourceID
			switch rid {
			case "recalls":
				rid = ckan.RecallsResourceID
			case "vehicles":
				rid = ckan.PrivateVehiclesResourceID
			case "unattended":
				rid = ckan.UnattendedRecallsResourceID
			}

			client := ckan.New(baseURL)
			table, err := client.FetchAll(cmd.Context(), rid, maxRows)
			if err != nil {
				return err
			}

			if err := writePipeCSV(out, table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(table.Records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "unattended",
		"resource ID or alias (recalls, vehicles, unattended)")
	cmd.Flags().StringVarP(&out, "out", "o", "export.csv", "output file")
	cmd.Flags().IntVar(&maxRows, "max-rows", 150000, "stop after this many records (0 = no cap)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "override the datastore endpoint")
	return cmd
}

func writePipeCSV(path string, table *ckan.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = '|'

	if err := w.Write(table.Fields); err != nil {
		return err
	}
	row := make([]string, len(table.Fields))
	for _, record := range table.Records {
		for i, field := range table.Fields {
			row[i] = ckan.FieldString(record, field)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
