package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbethune/genovo/internal/compare"
	"github.com/jbethune/genovo/internal/enumerate"
	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/expect"
	"github.com/jbethune/genovo/internal/genome"
	"github.com/jbethune/genovo/internal/logging"
	"github.com/jbethune/genovo/internal/observed"
	"github.com/jbethune/genovo/internal/papa"
	"github.com/jbethune/genovo/internal/region"
	"github.com/jbethune/genovo/internal/sample"
	"github.com/jbethune/genovo/internal/store"
)

// runPipeline implements original_source/src/main.rs's run_all / single
// -action control flow on a cobra command tree: action == "" means every
// subcommand was skipped (the root command itself ran), so every stage
// executes in order; a non-empty action names exactly one stage, which
// computes-and-persists then returns immediately without running later
// stages, matching the original's early return from its match arm.
func runPipeline(cmd *cobra.Command, action string) error {
	runAll := action == ""
	runStage := func(name string) bool { return runAll || action == name }

	var regions []region.SeqAnnotation
	var refGenome *genome.FASTAGenome
	var pointOracle *papa.PointOracle
	var indelOracle *papa.IndelOracle
	var possibleMutations enumerate.PossibleMutations
	var expectedMutations expect.ExpectedMutations
	var sampledMutations sample.SampledMutations
	var classifiedMutations []observed.AnnotatedPointMutation

	if flags.genome != "" {
		g, err := genome.LoadFASTA(flags.genome)
		if err != nil {
			return fmt.Errorf("loading genome: %w", err)
		}
		refGenome = g
	}
	if flags.pointMutationProbabilities != "" {
		o, err := papa.LoadPointOracle(flags.pointMutationProbabilities, 5)
		if err != nil {
			return fmt.Errorf("loading point mutation probabilities: %w", err)
		}
		pointOracle = o
	}
	if flags.indelMutationProbabilities != "" {
		minWidth := 0
		if pointOracle != nil {
			minWidth = pointOracle.KmerSize() - 1
		}
		o, err := papa.LoadIndelOracle(flags.indelMutationProbabilities, minWidth)
		if err != nil {
			return fmt.Errorf("loading indel mutation probabilities: %w", err)
		}
		indelOracle = o
	}

	// --- transform ---
	if runStage("transform") {
		if flags.gff3 == "" {
			return errs.NewMissingArgumentError("gff3")
		}
		annotations, err := region.TransformGFF3Annotations(flags.gff3, flags.id)
		if err != nil {
			return fmt.Errorf("transforming gff3 annotations: %w", err)
		}
		regions = annotations
		if flags.genomicRegions != "" {
			if err := region.WriteSequenceAnnotationsToFile(flags.genomicRegions, regions); err != nil {
				return fmt.Errorf("writing genomic regions: %w", err)
			}
		}
		if action == "transform" {
			return nil
		}
	} else if flags.genomicRegions != "" {
		annotations, err := region.ReadSequenceAnnotationsFromFile(flags.genomicRegions, flags.id)
		if err != nil {
			return fmt.Errorf("reading genomic regions: %w", err)
		}
		regions = annotations
	}

	// --- enumerate ---
	if runStage("enumerate") {
		if regions == nil {
			return errs.NewMissingArgumentError("genomic-regions")
		}
		if refGenome == nil {
			return errs.NewMissingArgumentError("genome")
		}
		if pointOracle == nil {
			return errs.NewMissingArgumentError("point-mutation-probabilities")
		}
		events, warnings := enumerate.EnumeratePossibleMutations(regions, refGenome, pointOracle, indelOracle, enumerate.Options{
			ScalingFactor: flags.scalingFactor,
			FilterForID:   flags.id,
		})
		possibleMutations = events
		if len(warnings) > 0 {
			stageLogger := logging.StageLogger(logger, "enumerate")
			joined := make([]error, 0, len(warnings))
			for _, w := range warnings {
				logging.RegionWarning(stageLogger, w.Region, "", w.Err)
				joined = append(joined, w.Err)
			}
			stageLogger.Warnw("skipped regions during enumeration",
				"count", len(warnings), "errors", logging.JoinWarnings(joined...))
		}
		if flags.possibleMutations != "" {
			writePossibleMutations := enumerate.WriteToFile
			if strings.HasSuffix(flags.possibleMutations, ".srl") {
				writePossibleMutations = enumerate.WriteSerealFile
			}
			if err := writePossibleMutations(flags.possibleMutations, possibleMutations); err != nil {
				return fmt.Errorf("writing possible mutations: %w", err)
			}
		}
		if action == "enumerate" {
			return nil
		}
	} else if flags.possibleMutations != "" {
		pm, err := enumerate.ReadAutoDetect(flags.possibleMutations)
		if err != nil {
			return fmt.Errorf("reading possible mutations: %w", err)
		}
		possibleMutations = pm
	}

	// --- expect ---
	if runStage("expect") {
		if possibleMutations == nil {
			return errs.NewMissingArgumentError("possible-mutations")
		}
		expectedMutations = expect.Compute(possibleMutations, flags.id)
		if flags.expectedMutations != "" {
			if err := expect.WriteToFile(flags.expectedMutations, expectedMutations); err != nil {
				return fmt.Errorf("writing expected mutations: %w", err)
			}
		}
		if action == "expect" {
			return nil
		}
	} else if flags.expectedMutations != "" {
		em, err := expect.ReadFromFile(flags.expectedMutations)
		if err != nil {
			return fmt.Errorf("reading expected mutations: %w", err)
		}
		expectedMutations = em
	}

	// --- sample ---
	if runStage("sample") {
		if possibleMutations == nil {
			return errs.NewMissingArgumentError("possible-mutations")
		}
		sampledMutations = sample.SampleMutations(possibleMutations, sample.Options{
			NumberOfSamples: flags.numberOfRandomSamples,
			FilterForID:     flags.id,
		})
		if flags.sampledMutations != "" {
			if err := sample.WriteToFile(flags.sampledMutations, sampledMutations); err != nil {
				return fmt.Errorf("writing sampled mutations: %w", err)
			}
		}
		if action == "sample" {
			return nil
		}
	} else if flags.sampledMutations != "" {
		sm, err := sample.ReadFromFile(flags.sampledMutations)
		if err != nil {
			return fmt.Errorf("reading sampled mutations: %w", err)
		}
		sampledMutations = sm
	}

	// possibleMutations can be tens of millions of entries; release it
	// before the classify/compare stages, which never need it again.
	possibleMutations = nil

	// --- classify ---
	if runStage("classify") {
		if flags.observedMutations == "" {
			return errs.NewMissingArgumentError("observed-mutations")
		}
		if regions == nil {
			return errs.NewMissingArgumentError("genomic-regions")
		}
		if refGenome == nil {
			return errs.NewMissingArgumentError("genome")
		}
		observedMutations, err := observed.ReadMutationsFromFile(flags.observedMutations, flags.positionAdjustment)
		if err != nil {
			return fmt.Errorf("reading observed mutations: %w", err)
		}
		classified, err := observed.ClassifyMutations(observedMutations, regions, refGenome, flags.id)
		if err != nil {
			return fmt.Errorf("classifying observed mutations: %w", err)
		}
		classifiedMutations = classified
		if flags.classifiedMutations != "" {
			if flags.sumUpObservedMutationsPerTranscript {
				if err := compare.WriteTranscriptSumFile(flags.classifiedMutations, classifiedMutations, flags.id); err != nil {
					return fmt.Errorf("writing classified mutations: %w", err)
				}
			} else if err := observed.WriteToFile(flags.classifiedMutations, classifiedMutations); err != nil {
				return fmt.Errorf("writing classified mutations: %w", err)
			}
		}
		if action == "classify" {
			return nil
		}
	} else if flags.classifiedMutations != "" {
		cm, err := observed.ReadFromFile(flags.classifiedMutations)
		if err != nil {
			return fmt.Errorf("reading classified mutations: %w", err)
		}
		classifiedMutations = cm
	}

	// --- compare ---
	if runStage("compare") {
		if classifiedMutations == nil {
			return errs.NewMissingArgumentError("classified-mutations")
		}
		if expectedMutations == nil {
			return errs.NewMissingArgumentError("expected-mutations")
		}
		if sampledMutations == nil {
			return errs.NewMissingArgumentError("sampled-mutations")
		}
		comparisons, warnings := compare.CompareMutations(classifiedMutations, expectedMutations, sampledMutations, flags.id)
		if len(warnings) > 0 {
			stageLogger := logging.StageLogger(logger, "compare")
			joined := make([]error, 0, len(warnings))
			for _, w := range warnings {
				w := w
				logging.RegionWarning(stageLogger, w.Region, w.MutationType, &w)
				joined = append(joined, &w)
			}
			stageLogger.Warnw("omitted comparator rows with missing sampled distributions",
				"count", len(warnings), "errors", logging.JoinWarnings(joined...))
		}
		path := flags.significantMutations
		if path == "" {
			path = "-"
		}
		if err := compare.WriteToFile(path, comparisons); err != nil {
			return fmt.Errorf("writing significant mutations: %w", err)
		}
		if flags.duckdb != "" {
			db, err := store.Open(flags.duckdb)
			if err != nil {
				return fmt.Errorf("opening duckdb database: %w", err)
			}
			defer db.Close()
			if err := db.WriteComparisons(comparisons); err != nil {
				return fmt.Errorf("writing to duckdb database: %w", err)
			}
		}
		if action == "compare" {
			return nil
		}
	}

	if !runAll {
		return fmt.Errorf("invalid action %q", action)
	}
	return nil
}
