package main

import "github.com/spf13/cobra"

func newTransformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Parse a GFF3 file into genomic region annotations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, "transform")
		},
	}
}
