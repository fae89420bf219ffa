package main

import "github.com/spf13/cobra"

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Draw a Monte Carlo null distribution of mutation counts per region",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, "sample")
		},
	}
}
