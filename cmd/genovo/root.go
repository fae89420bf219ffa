package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jbethune/genovo/internal/config"
	"github.com/jbethune/genovo/internal/logging"
)

// pipelineFlags holds every scalar/file flag named in §6, bound once on the
// root command and inherited by every subcommand.
type pipelineFlags struct {
	gff3                       string
	genome                     string
	pointMutationProbabilities string
	indelMutationProbabilities string
	observedMutations          string
	genomicRegions             string
	possibleMutations          string
	classifiedMutations        string
	expectedMutations          string
	sampledMutations           string
	significantMutations       string
	duckdb                     string

	id                                  string
	scalingFactor                       float64
	numberOfRandomSamples               int
	sumUpObservedMutationsPerTranscript bool
	positionAdjustment                  int64
	verbose                             bool
}

var flags pipelineFlags
var logger *zap.SugaredLogger

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "genovo",
		Short:   "Determine genes enriched with de-novo mutations",
		Version: "0.2.0",
		Long: "genovo compares observed de-novo mutation counts against a null model\n" +
			"built from per-site mutation probabilities, producing per-region\n" +
			"significance scores.\n\n" +
			"If no subcommand is given, every stage runs in order: transform,\n" +
			"enumerate, expect, sample, classify, compare.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, "")
		},
	}

	bindPipelineFlags(root)

	root.AddCommand(newTransformCmd())
	root.AddCommand(newEnumerateCmd())
	root.AddCommand(newExpectCmd())
	root.AddCommand(newSampleCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func bindPipelineFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&flags.gff3, "gff3", "", "gff3 gene annotations file")
	f.StringVar(&flags.genome, "genome", "", "a reference genome FASTA file (optionally .gz)")
	f.StringVar(&flags.pointMutationProbabilities, "point-mutation-probabilities", "", "a k-mer point mutation probability table")
	f.StringVar(&flags.indelMutationProbabilities, "indel-mutation-probabilities", "", "a k-mer indel mutation probability table")
	f.StringVar(&flags.observedMutations, "observed-mutations", "", "a whitespace-delimited file of observed point mutations")
	f.StringVar(&flags.genomicRegions, "genomic-regions", "", "locations of exons, CDS and their phases for each transcript")
	f.StringVar(&flags.possibleMutations, "possible-mutations", "", "a list of all possible point mutations for each transcript")
	f.StringVar(&flags.classifiedMutations, "classified-mutations", "", "observed, classified point mutations")
	f.StringVar(&flags.expectedMutations, "expected-mutations", "", "expected number of point mutations per transcript")
	f.StringVar(&flags.sampledMutations, "sampled-mutations", "", "sampled number of point mutations per transcript")
	f.StringVar(&flags.significantMutations, "significant-mutations", "-", "statistical test results for every transcript")
	f.StringVar(&flags.duckdb, "duckdb", "", "optional DuckDB database to additionally mirror significant-mutations rows into")

	f.StringVar(&flags.id, "id", "", "only process a transcript with the given ID")
	f.Float64Var(&flags.scalingFactor, "scaling-factor", 1.0, "scaling factor for all mutation probabilities")
	f.IntVar(&flags.numberOfRandomSamples, "number-of-random-samples", 1000, "the number of random samples that should be generated")
	f.BoolVar(&flags.sumUpObservedMutationsPerTranscript, "sum-up-observed-mutations-per-transcript", false, "tally up observed mutations per transcript instead of listing them individually")
	f.Int64Var(&flags.positionAdjustment, "position-adjustment", -1, "added to every parsed observed-mutation position")
	f.BoolVar(&flags.verbose, "verbose", false, "enable human-readable development logging")
}

// Execute builds and runs the genovo command tree.
func Execute() error {
	if err := config.Load(); err != nil {
		return err
	}

	root := newRootCmd()
	applyConfigDefaults(root)

	// The logger is built once cobra has parsed argv, so --verbose applies.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := logging.NewPipelineLogger(flags.verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	}

	err := root.Execute()
	if logger != nil {
		logger.Sync() //nolint:errcheck
	}
	return err
}

// applyConfigDefaults overrides a flag's cobra default with the value from
// ~/.genovo.yaml when the user did not set the flag on the command line,
// matching §1's "flags override config, config overrides built-in defaults".
func applyConfigDefaults(root *cobra.Command) {
	if viper.IsSet(config.KeyScalingFactor) {
		root.PersistentFlags().Lookup("scaling-factor").DefValue = fmt.Sprint(viper.GetFloat64(config.KeyScalingFactor))
		flags.scalingFactor = viper.GetFloat64(config.KeyScalingFactor)
	}
	if viper.IsSet(config.KeyNumberOfSamples) {
		flags.numberOfRandomSamples = viper.GetInt(config.KeyNumberOfSamples)
	}
	if viper.IsSet(config.KeyPositionAdjustment) {
		flags.positionAdjustment = int64(viper.GetInt(config.KeyPositionAdjustment))
	}
	for key, dest := range map[string]*string{
		config.KeyGFF3:               &flags.gff3,
		config.KeyGenome:             &flags.genome,
		config.KeyPointMutationProbs: &flags.pointMutationProbabilities,
		config.KeyIndelMutationProbs: &flags.indelMutationProbabilities,
	} {
		if viper.IsSet(key) {
			*dest = viper.GetString(key)
		}
	}
}
