package main

import "github.com/spf13/cobra"

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Classify observed point mutations against the genomic regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, "classify")
		},
	}
}
