// Command genovo runs the de-novo mutation enrichment pipeline: Transform,
// Enumerator, Expector, Sampler, Classifier, Comparator. Grounded on
// original_source/src/main.rs's run_all/single-action control flow,
// restructured onto a github.com/spf13/cobra command tree the way
// cmd/vibe-vep/config.go already uses cobra for its own subcommand.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
