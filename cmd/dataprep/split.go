package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recallboard/internal/splitter"
)

func newSplitCmd() *cobra.Command {
	var (
		vehicles string
		recalls  string
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Partition the raw exports into data_0.csv .. data_9.csv",
		Long: `Joins the per-vehicle export with the recall details export and writes
ten shard files partitioned by the last digit of the plate number. Input
files may be UTF-8 or Windows-1255; output is always comma-separated UTF-8.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := splitter.Split(splitter.Options{
				VehiclesPath: vehicles,
				RecallsPath:  recalls,
				OutDir:       outDir,
			})
			if err != nil {
				return err
			}

			for digit, n := range summary.Written {
				fmt.Fprintf(cmd.OutOrStdout(), "data_%d.csv: %d records\n", digit, n)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total %d records, %d vehicles skipped, %d unmatched recall refs\n",
				summary.Total(), summary.SkippedVehicles, summary.UnmatchedRefs)
			return nil
		},
	}

	cmd.Flags().StringVar(&vehicles, "vehicles", "", "per-vehicle recall export (pipe-separated)")
	cmd.Flags().StringVar(&recalls, "recalls", "", "recall details export (pipe-separated)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "split_data", "output directory")
	cmd.MarkFlagRequired("vehicles")
	cmd.MarkFlagRequired("recalls")
	return cmd
}
