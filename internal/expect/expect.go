// Package expect implements the Expector component of §4.3: summing the
// possible-mutation probabilities for each (region, consequence class) pair
// into an expected count, at high enough precision that ~10^5 terms of order
// 1e-8 do not lose working precision to catastrophic cancellation. Grounded
// on original_source/src/expect.rs, which accumulates in BigDecimal and
// converts to the working float only once at the end.
package expect

import (
	"math/big"

	"github.com/jbethune/genovo/internal/enumerate"
	"github.com/jbethune/genovo/internal/mutation"
)

// precisionBits is generous enough that summing 10^5 terms of order 1e-8
// loses no working-precision (float64, 53-bit mantissa) bits to rounding.
const precisionBits = 200

// ExpectedMutations maps a region name to its expected mutation counts.
type ExpectedMutations map[string]mutation.ExpectedMutationCounts

// Compute sums, per region and per consequence class, the probabilities of
// every possible mutation event, per §4.3. No decimal/bigdecimal library
// exists anywhere in the retrieved example pack (checked every go.mod and
// other_examples/), so this uses math/big.Float as the narrowest standard-
// library substitute for the original's BigDecimal accumulator.
func Compute(pm enumerate.PossibleMutations, filterForID string) ExpectedMutations {
	result := make(ExpectedMutations, len(pm))
	for region, events := range pm {
		if filterForID != "" && region != filterForID {
			continue
		}

		var accumulators [10]*big.Float
		for _, ev := range events {
			i := int(ev.Type)
			if accumulators[i] == nil {
				accumulators[i] = new(big.Float).SetPrec(precisionBits)
			}
			term := new(big.Float).SetPrec(precisionBits).SetFloat64(ev.Probability)
			accumulators[i].Add(accumulators[i], term)
		}

		var counts mutation.ExpectedMutationCounts
		for _, t := range mutation.OrderedTypes() {
			if acc := accumulators[t]; acc != nil {
				f64, _ := acc.Float64()
				counts.Set(t, f64)
			}
		}
		result[region] = counts
	}
	return result
}
