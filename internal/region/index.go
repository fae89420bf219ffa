package region

import "sort"

// Index answers "which annotation(s) cover this genomic position" queries,
// adapted from this codebase's suffix-max pruned interval tree
// (internal/cache/intervaltree.go) and repointed at *SeqAnnotation instead
// of *Transcript. Built once from a loaded annotation set and never
// mutated, consistent with the no-shared-mutable-state model of §5.
type Index struct {
	byChr map[string]*chromIndex
}

type chromIndex struct {
	intervals []annotatedInterval
	maxEnd    []int64
}

type annotatedInterval struct {
	start, end int64
	annotation *SeqAnnotation
}

// BuildIndex constructs a position index over annotations, grouped by
// chromosome.
func BuildIndex(annotations []SeqAnnotation) *Index {
	byChr := make(map[string]*chromIndex)
	grouped := make(map[string][]annotatedInterval)
	for i := range annotations {
		a := &annotations[i]
		grouped[a.Chr] = append(grouped[a.Chr], annotatedInterval{
			start:      a.Range.Start,
			end:        a.Range.Stop - 1, // inclusive end to match maxEnd pruning below
			annotation: a,
		})
	}

	for chr, intervals := range grouped {
		sort.Slice(intervals, func(i, j int) bool {
			return intervals[i].start < intervals[j].start
		})
		maxEnd := make([]int64, len(intervals))
		maxEnd[len(intervals)-1] = intervals[len(intervals)-1].end
		for i := len(intervals) - 2; i >= 0; i-- {
			maxEnd[i] = intervals[i].end
			if maxEnd[i+1] > maxEnd[i] {
				maxEnd[i] = maxEnd[i+1]
			}
		}
		byChr[chr] = &chromIndex{intervals: intervals, maxEnd: maxEnd}
	}

	return &Index{byChr: byChr}
}

// FindOverlaps returns every annotation on chr whose range contains pos.
func (idx *Index) FindOverlaps(chr string, pos int64) []*SeqAnnotation {
	ci, ok := idx.byChr[chr]
	if !ok {
		return nil
	}

	var result []*SeqAnnotation
	hi := sort.Search(len(ci.intervals), func(i int) bool {
		return ci.intervals[i].start > pos
	})
	for i := hi - 1; i >= 0; i-- {
		if ci.maxEnd[i] < pos {
			break
		}
		if ci.intervals[i].end >= pos {
			result = append(result, ci.intervals[i].annotation)
		}
	}
	return result
}
