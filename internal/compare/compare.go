// Package compare implements the Comparator component of §4.5: it tallies
// classified observed mutations per region, looks up each region's expected
// count and sampled null distribution, and computes the one-sided empirical
// p-value of observing at least as many mutations as were seen. Grounded on
// original_source/src/compare.rs.
package compare

import (
	"fmt"
	"sort"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/expect"
	"github.com/jbethune/genovo/internal/mutation"
	"github.com/jbethune/genovo/internal/observed"
	"github.com/jbethune/genovo/internal/sample"
)

// ComparedMutation is one row of the significant-mutations table: a single
// (region, consequence class) with its observed count, expected count, and
// empirical p-value.
type ComparedMutation struct {
	Region       string
	MutationType mutation.Type
	Observed     uint64
	Expected     float64
	PValue       float64
}

// TallyUpObservedMutations counts classified observed mutations per region
// and consequence class, optionally restricted to a single region. Ported
// from compare.rs::tally_up_observed_mutations.
func TallyUpObservedMutations(mutations []observed.AnnotatedPointMutation, filterForID string) map[string]mutation.ObservedMutationCounts {
	result := make(map[string]mutation.ObservedMutationCounts)
	for _, m := range mutations {
		if filterForID != "" && m.RegionName != filterForID {
			continue
		}
		counts := result[m.RegionName]
		counts.Add(m.MutationType, 1)
		result[m.RegionName] = counts
	}
	return result
}

// CompareMutations implements §4.5. For every region present in
// expectedMutations (optionally restricted to filterForID), and for every
// consequence class other than Unknown (which is skipped even when a sampled
// distribution for it exists), it looks up
// the observed count (zero if the region had no classified mutations at
// all), the expected count, and the sampled null distribution, then computes
// the right-tail p-value of the observed count. A (region, class) with an
// expectation but no sampled distribution is reported as a warning and
// omitted from the result, rather than aborting the run. Results are sorted
// ascending by p-value, with NaN treated as equal to any other value (the
// resolution of §9 Open Question #2: Go's sort is not required to be stable
// across equal elements, and NaN can never compare less than or greater than
// anything, so the comparator used here must never look at NaN and decide
// "less"; ties, including NaN ties, keep their relative order from the
// region/class iteration below, which is determinisic because it walks
// mutation.OrderedTypes() under a sorted region-key loop).
func CompareMutations(
	classifiedObservedMutations []observed.AnnotatedPointMutation,
	expectedMutations expect.ExpectedMutations,
	sampledMutations sample.SampledMutations,
	filterForID string,
) ([]ComparedMutation, []errs.SamplingAbsentButExpected) {
	observedCounts := TallyUpObservedMutations(classifiedObservedMutations, filterForID)

	regions := make([]string, 0, len(expectedMutations))
	for region := range expectedMutations {
		if filterForID != "" && region != filterForID {
			continue
		}
		regions = append(regions, region)
	}
	sort.Strings(regions)

	var result []ComparedMutation
	var warnings []errs.SamplingAbsentButExpected

	for _, region := range regions {
		regionExpected := expectedMutations[region]
		regionObserved := observedCounts[region] // zero value if absent
		regionSampled := sampledMutations[region]

		for _, t := range mutation.OrderedTypes() {
			if t == mutation.Unknown {
				continue
			}
			expectedValue := regionExpected.Get(t)
			observedValue := regionObserved.Get(t)

			counter, ok := regionSampled[t]
			if !ok {
				if expectedValue != 0 {
					warnings = append(warnings, *errs.NewSamplingAbsentButExpected(region, t.String(), expectedValue))
				}
				continue
			}

			pValue := counter.PValues().NHitsOrMore(int(observedValue))
			result = append(result, ComparedMutation{
				Region:       region,
				MutationType: t,
				Observed:     observedValue,
				Expected:     expectedValue,
				PValue:       pValue,
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return lessPValue(result[i].PValue, result[j].PValue)
	})
	return result, warnings
}

// lessPValue orders ascending by p-value. NaN never compares less than
// anything, matching Rust's `partial_cmp(...).unwrap_or(Equal)`: when either
// side is NaN the pair is treated as equal (neither "less"), leaving their
// relative order from the stable sort's input sequence unchanged.
func lessPValue(a, b float64) bool {
	if a != a || b != b { // either NaN
		return false
	}
	return a < b
}

// String renders a ComparedMutation's mutation type for error messages.
func (c ComparedMutation) String() string {
	return fmt.Sprintf("%s/%s: observed=%d expected=%g p=%g", c.Region, c.MutationType, c.Observed, c.Expected, c.PValue)
}
