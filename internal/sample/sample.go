// Package sample implements the Sampler component of §4.4: Monte Carlo
// estimation of the null distribution of "number of successes" per
// (region, consequence class), using one uniform draw per trial compared
// against every probability in the class (the correlated-trial
// simplification documented in §9). Grounded on
// original_source/src/sample.rs.
package sample

import (
	"sort"
	"time"

	"github.com/jbethune/genovo/internal/enumerate"
	"github.com/jbethune/genovo/internal/mutation"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SampledMutations maps a region name to, per consequence class, the
// empirical distribution of "number of sites mutated" across trials.
type SampledMutations map[string]map[mutation.Type]*mutation.DefaultCounter

// Options controls the sampler's behavior.
type Options struct {
	// NumberOfSamples is the number of Monte Carlo trials per class.
	// Defaults to 1000 if zero or negative, matching the CLI's default.
	NumberOfSamples int
	// DropUnknownMutationType skips the Unknown class entirely: sampling it
	// makes little sense, per sample.rs.
	DropUnknownMutationType bool
	FilterForID             string
	// Seed, if non-nil, makes the Monte Carlo draws reproducible. §9's Open
	// Question #3 notes the original threads no seed through the sampler;
	// this resolves that by making one available, defaulting to a
	// time-seeded source when absent.
	Seed *int64
}

// SampleMutations implements §4.4. For each region and consequence class, it
// sorts that class's possible-mutation probabilities ascending, then draws
// NumberOfSamples uniform thresholds in [0, 1); the number of probabilities
// at or above the threshold is treated as the trial's count of "successes"
// (mutated sites), using binary search over the sorted slice.
func SampleMutations(pm enumerate.PossibleMutations, opts Options) SampledMutations {
	var src rand.Source
	if opts.Seed != nil {
		src = rand.NewSource(uint64(*opts.Seed))
	} else {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}

	n := opts.NumberOfSamples
	if n <= 0 {
		n = 1000
	}

	result := make(SampledMutations)
	for regionName, events := range pm {
		if opts.FilterForID != "" && regionName != opts.FilterForID {
			continue
		}

		buckets := make(map[mutation.Type][]float64)
		for _, ev := range events {
			if opts.DropUnknownMutationType && ev.Type == mutation.Unknown {
				continue
			}
			buckets[ev.Type] = append(buckets[ev.Type], ev.Probability)
		}

		distributions := make(map[mutation.Type]*mutation.DefaultCounter)
		for t, probs := range buckets {
			sort.Float64s(probs)
			distributions[t] = drawDistribution(probs, n, uniform)
		}
		result[regionName] = distributions
	}
	return result
}

// drawDistribution performs n Monte Carlo trials against a single class's
// sorted probability slice.
func drawDistribution(sortedProbs []float64, n int, uniform distuv.Uniform) *mutation.DefaultCounter {
	counter := mutation.NewDefaultCounter()
	for i := 0; i < n; i++ {
		threshold := uniform.Rand()
		// Leftmost index with sortedProbs[idx] >= threshold: everything at
		// or past it counts as a "success" (mutated site) for this trial.
		failures := sort.Search(len(sortedProbs), func(idx int) bool { return sortedProbs[idx] >= threshold })
		successes := len(sortedProbs) - failures
		counter.Inc(successes)
	}
	return counter
}
