// Package observed implements the observed-mutation half of the Classifier
// component (§4.2): reading the whitespace-delimited observed-mutations
// input, locating each point mutation within the transcript that contains
// it, and classifying it with the exact same internal/classify core the
// Enumerator drives — satisfying the classifier-identity invariant of
// §4.2/§8. Grounded on original_source/src/observed.rs.
package observed

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jbethune/genovo/internal/classify"
	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/genome"
	"github.com/jbethune/genovo/internal/ioutil"
	"github.com/jbethune/genovo/internal/mutation"
	"github.com/jbethune/genovo/internal/region"
)

// DefaultPositionAdjustment is added to every parsed position to convert the
// observed-mutations input (1-based, per §6) to this codebase's 0-based
// coordinates. Named per §9's Open Question #4 rather than left as hidden
// arithmetic.
const DefaultPositionAdjustment int64 = -1

// flank is the number of context bases fetched on either side of a
// transcript's range for classification, per observed.rs.
const flank = 2

// PointMutation is a single observed single-nucleotide variant read from the
// observed-mutations input. Indel records in that file are skipped by
// ReadMutationsFromFile, matching the original reader.
type PointMutation struct {
	Chromosome string
	Position   int64
	From       byte
	To         byte
}

// AnnotatedPointMutation is a PointMutation paired with the transcript it
// was found in and the consequence class the Classifier assigned it.
type AnnotatedPointMutation struct {
	RegionName   string
	MutationType mutation.Type
	Chromosome   string
	Position     int64
	From         byte
	To           byte
}

// Change renders the variant's allele change in the "REF->ALT" form used by
// the classified-mutations TSV (§6).
func (m AnnotatedPointMutation) Change() string {
	return fmt.Sprintf("%c->%c", m.From, m.To)
}

// ParseChange parses the "REF->ALT" form back into (from, to).
func ParseChange(s string) (byte, byte, error) {
	parts := strings.SplitN(s, "->", 2)
	if len(parts) != 2 || len(parts[0]) != 1 || len(parts[1]) != 1 {
		return 0, 0, fmt.Errorf("malformed change %q: expected \"REF->ALT\"", s)
	}
	return parts[0][0], parts[1][0], nil
}

// ReadMutationsFromFile reads the observed-mutations input: whitespace
// (space or tab) separated fields, "#"-prefixed comment lines, at least four
// columns (chromosome, position, ref, alt; trailing columns are ignored).
// Records whose ref or alt field is not a single base are silently skipped,
// matching observed.rs's point-mutation-only reader. adjustment is added to
// every parsed position.
func ReadMutationsFromFile(path string, adjustment int64) ([]PointMutation, error) {
	r, err := ioutil.GetReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var result []PointMutation
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errs.NewParseError(path, lineNo, "expected at least 4 whitespace-separated fields")
		}
		if len(fields[2]) != 1 || len(fields[3]) != 1 {
			continue // indels are not representable by this reader
		}
		pos, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, "bad position: "+err.Error())
		}
		result = append(result, PointMutation{
			Chromosome: fields[0],
			Position:   pos + adjustment,
			From:       fields[2][0],
			To:         fields[3][0],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.NewIOError(path, err)
	}
	return result, nil
}

// ClassifyMutations implements the observed-mutation half of §4.2. For every
// annotation (or just the one named by filterForID) it fetches a
// flank-padded context around the transcript's range, finds the observed
// mutations that fall inside it, and classifies each with the same
// internal/classify.Classifier the Enumerator uses.
func ClassifyMutations(
	observedMutations []PointMutation,
	annotations []region.SeqAnnotation,
	g genome.Genome,
	filterForID string,
) ([]AnnotatedPointMutation, error) {
	var result []AnnotatedPointMutation

	for i := range annotations {
		a := &annotations[i]
		if filterForID != "" && a.Name != filterForID {
			continue
		}

		relevant := filterObservedMutations(observedMutations, a.Chr, a.Range)
		if len(relevant) == 0 {
			continue
		}

		seq, err := g.Sequence(a.Chr, a.Range.Start-flank, a.Range.Stop+flank)
		if err != nil {
			return nil, errs.NewSkippableRegionError(a.Name, err)
		}

		c := classify.NewClassifier(a)
		for _, m := range relevant {
			middle := m.Position - a.Range.Start + flank
			context := seq[middle-flank : middle+flank+1]
			if context[flank] != m.From {
				return nil, errs.NewParseError(
					fmt.Sprintf("%s:%d", m.Chromosome, m.Position), 0,
					fmt.Sprintf("reference base mismatch: genome has %q, observed mutation expects %q", context[flank], m.From),
				)
			}

			intron, inIntron := a.FindIntron(m.Position)
			var intronPtr *region.Interval
			if inIntron {
				intronPtr = &intron
			}

			t := c.ClassifyByPosition(m.Position, intronPtr)
			if t == mutation.Unknown {
				if cds, inCDS := a.FindCDS(m.Position); inCDS {
					t = c.ClassifyCodingMutation(m.Position, context, m.To, cds)
				}
			}

			result = append(result, AnnotatedPointMutation{
				RegionName:   a.Name,
				MutationType: t,
				Chromosome:   m.Chromosome,
				Position:     m.Position,
				From:         m.From,
				To:           m.To,
			})
		}
	}
	return result, nil
}

// filterObservedMutations returns the subset of mutations on chr whose
// position falls inside rng, via a linear scan, matching
// observed.rs::filter_observed_mutations.
func filterObservedMutations(mutations []PointMutation, chr string, rng region.Interval) []PointMutation {
	var out []PointMutation
	for _, m := range mutations {
		if m.Chromosome == chr && rng.Contains(m.Position) {
			out = append(out, m)
		}
	}
	return out
}
