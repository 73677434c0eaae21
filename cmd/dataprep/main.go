// Command dataprep prepares the recall dataset: fetching the raw exports
// from the data.gov.il datastore and splitting them into the shard files the
// server reads.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "dataprep",
		Short:         "Prepare the sharded vehicle recall dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFetchCmd(), newSplitCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
