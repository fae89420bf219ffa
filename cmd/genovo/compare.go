package main

import "github.com/spf13/cobra"

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare observed mutation counts against the sampled null distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, "compare")
		},
	}
}
