package main

import "github.com/spf13/cobra"

func newEnumerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enumerate",
		Short: "Enumerate every possible point mutation and classify its consequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, "enumerate")
		},
	}
}
