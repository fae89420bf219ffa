package papa

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
)

// IndelEvent is one insertion/deletion possibility the indel oracle
// proposes at a site: a net length change (positive for insertion,
// negative for deletion) and its probability.
type IndelEvent struct {
	LengthDelta int
	Probability float64
}

// IndelOracle answers "what indel events are possible at this k-mer
// context" queries, mirroring PointOracle's table-driven shape but with a
// variable-length event list per context instead of a fixed 4-column row.
type IndelOracle struct {
	kmerSize int
	table    map[string][]IndelEvent
}

// LoadIndelOracle reads an indel-mutation probability table: one line per
// context is `kmer TAB delta:probability TAB delta:probability ...`.
// minWidth, if positive (the original CLI derives it from the point
// oracle's k-mer size minus one), is the minimum acceptable context width.
func LoadIndelOracle(path string, minWidth int) (*IndelOracle, error) {
	r, err := ioutil.GetReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	o := &IndelOracle{table: make(map[string][]IndelEvent)}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, errs.NewParseError(path, lineNo, "expected kmer + at least one delta:probability field")
		}
		kmer := strings.ToUpper(fields[0])
		if o.kmerSize == 0 {
			o.kmerSize = len(kmer)
		} else if len(kmer) != o.kmerSize {
			return nil, errs.NewParseError(path, lineNo, "inconsistent k-mer width in indel probability table")
		}

		events := make([]IndelEvent, 0, len(fields)-1)
		for _, field := range fields[1:] {
			parts := strings.SplitN(field, ":", 2)
			if len(parts) != 2 {
				return nil, errs.NewParseError(path, lineNo, fmt.Sprintf("bad delta:probability field %q", field))
			}
			delta, err := strconv.Atoi(parts[0])
			if err != nil {
				return nil, errs.NewParseError(path, lineNo, "bad length delta: "+err.Error())
			}
			prob, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, errs.NewParseError(path, lineNo, "bad probability: "+err.Error())
			}
			events = append(events, IndelEvent{LengthDelta: delta, Probability: prob})
		}
		o.table[kmer] = events
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.NewIOError(path, err)
	}

	if o.kmerSize == 0 {
		return nil, fmt.Errorf("empty indel probability table %s", path)
	}
	if minWidth > 0 && o.kmerSize < minWidth {
		return nil, fmt.Errorf("indel probability table k-mer width %d is narrower than the required minimum %d", o.kmerSize, minWidth)
	}

	return o, nil
}

// KmerSize returns the width of the k-mer context this table is keyed by.
func (o *IndelOracle) KmerSize() int {
	return o.kmerSize
}

// Radius returns the number of flanking bases required on each side of a
// candidate indel anchor site.
func (o *IndelOracle) Radius() int64 {
	r := int64(o.kmerSize-1) / 2
	if r < 2 {
		return 2
	}
	return r
}

// Events returns the indel events possible at the given k-mer context, or
// nil if the context was never seen in the table.
func (o *IndelOracle) Events(context string) []IndelEvent {
	return o.table[strings.ToUpper(context)]
}
