package main

import "github.com/spf13/cobra"

func newExpectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expect",
		Short: "Sum possible-mutation probabilities into expected counts per region",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, "expect")
		},
	}
}
