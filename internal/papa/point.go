// Package papa implements the k-mer context-conditioned mutation
// probability oracle spec.md §1 treats as a fixed external interface (named
// after the original's "pattern partition prediction" table). No such
// probability-table library exists anywhere in the retrieved example pack,
// so this package loads it itself, following this codebase's own
// TSV-table-loading idiom (bufio.Scanner, strings.Split on tabs,
// strconv parsing, as in internal/cache/loader.go) since no third-party
// substitute is available.
package papa

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
)

// bases is the fixed column order point-mutation probability tables use.
var bases = [4]byte{'A', 'C', 'G', 'T'}

// PointOracle answers "probability of ref->alt given k-mer context"
// queries. Rows are keyed by an odd-length upper-case k-mer whose central
// base is the reference base; columns hold the probability of mutating to
// each of A, C, G, T (the reference-to-reference cell is typically 0 or
// NaN and is never emitted as an event).
type PointOracle struct {
	kmerSize int
	table    map[string][4]float64
}

// LoadPointOracle reads a point-mutation probability table. minKmerSize, if
// positive, is the minimum acceptable k-mer width (the CLI passes 5 so every
// coding site keeps a full codon of flanking context); a table narrower than
// this fails to load.
func LoadPointOracle(path string, minKmerSize int) (*PointOracle, error) {
	r, err := ioutil.GetReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	o := &PointOracle{table: make(map[string][4]float64)}

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
		if len(fields) != 5 {
			return nil, errs.NewParseError(path, lineNo, fmt.Sprintf("expected kmer + 4 probability columns, got %d fields", len(fields)))
		}
		kmer := strings.ToUpper(fields[0])
		if o.kmerSize == 0 {
			o.kmerSize = len(kmer)
		} else if len(kmer) != o.kmerSize {
			return nil, errs.NewParseError(path, lineNo, "inconsistent k-mer width in probability table")
		}

		var probs [4]float64
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, errs.NewParseError(path, lineNo, "bad probability: "+err.Error())
			}
			probs[i] = v
		}
		o.table[kmer] = probs
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.NewIOError(path, err)
	}

	if o.kmerSize == 0 {
		return nil, fmt.Errorf("empty point-mutation probability table %s", path)
	}
	if minKmerSize > 0 && o.kmerSize < minKmerSize {
		return nil, fmt.Errorf("point-mutation probability table k-mer width %d is narrower than the required minimum %d", o.kmerSize, minKmerSize)
	}

	return o, nil
}

// KmerSize returns the width of the k-mer context this table is keyed by.
func (o *PointOracle) KmerSize() int {
	return o.kmerSize
}

// Radius returns the number of flanking bases required on each side of a
// mutated site, enough to cover both the k-mer context and (per the
// Enumerator's contract in §4.1) a full codon.
func (o *PointOracle) Radius() int64 {
	r := int64(o.kmerSize-1) / 2
	if r < 2 {
		return 2
	}
	return r
}

// Probability returns the probability of context's central base mutating
// to alt. context must be KmerSize() bases long and upper-case. Returns NaN
// if the context was never seen in the table.
func (o *PointOracle) Probability(context string, alt byte) float64 {
	probs, ok := o.table[strings.ToUpper(context)]
	if !ok {
		return math.NaN()
	}
	for i, b := range bases {
		if b == alt {
			return probs[i]
		}
	}
	return math.NaN()
}

// Bases returns the fixed column order (A, C, G, T) used by probability
// tables.
func Bases() [4]byte {
	return bases
}
