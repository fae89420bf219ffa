package compare

import (
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
	"github.com/jbethune/genovo/internal/mutation"
	"github.com/jbethune/genovo/internal/observed"
)

// WriteTranscriptSumFile implements the `--sum-up-observed-mutations-per-
// transcript` alternate classified-mutations writer (§3 of the expanded
// spec): one row per transcript with one count column per MutationType,
// instead of one row per variant. Grounded on
// original_source/src/observed.rs::sum_up_and_write_to_file, relocated here
// because it depends on TallyUpObservedMutations (see the DESIGN.md entry
// for internal/observed for why the writer itself couldn't stay there
// without an import cycle).
func WriteTranscriptSumFile(path string, classifiedObservedMutations []observed.AnnotatedPointMutation, filterForID string) error {
	counts := TallyUpObservedMutations(classifiedObservedMutations, filterForID)

	w, err := ioutil.GetWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := []string{"name"}
	for _, t := range mutation.OrderedTypes() {
		header = append(header, t.String())
	}
	if err := cw.Write(header); err != nil {
		return errs.NewIOError(path, err)
	}

	regions := make([]string, 0, len(counts))
	for region := range counts {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	for _, region := range regions {
		regionCounts := counts[region]
		row := make([]string, 1, len(mutation.OrderedTypes())+1)
		row[0] = region
		regionCounts.Iterate(func(_ mutation.Type, value uint64) {
			row = append(row, strconv.FormatUint(value, 10))
		})
		if err := cw.Write(row); err != nil {
			return errs.NewIOError(path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errs.NewIOError(path, err)
	}
	return nil
}
