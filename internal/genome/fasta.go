// Package genome provides random-access (chr, start, stop) -> sequence
// lookups against a reference genome. Spec.md §1 treats 2-bit genome
// reading as an external collaborator with a fixed interface; no 2bit
// library exists anywhere in the retrieved example pack, so this adapts
// this codebase's own FASTA loader (internal/cache/fasta_loader.go),
// restructured from per-transcript CDS lookup to per-chromosome positional
// slicing.
package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"strings"

	"github.com/jbethune/genovo/internal/errs"
)

// Genome is the random-access reference genome interface the Enumerator and
// Classifier depend on.
type Genome interface {
	// Sequence returns the upper-case bases in the half-open range
	// [start, stop) on chromosome chr.
	Sequence(chr string, start, stop int64) (string, error)
}

// FASTAGenome loads an entire (optionally gzip-compressed) FASTA file into
// memory, indexed by sequence name, and answers Sequence queries by slicing.
type FASTAGenome struct {
	sequences map[string]string
}

// LoadFASTA reads a FASTA file (plain or ".gz") into a FASTAGenome.
func LoadFASTA(path string) (*FASTAGenome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.NewIOError(path, err)
	}
	defer f.Close()

	var reader *bufio.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errs.NewIOError(path, err)
		}
		defer gz.Close()
		reader = bufio.NewReaderSize(gz, 1<<20)
	} else {
		reader = bufio.NewReaderSize(f, 1<<20)
	}

	g := &FASTAGenome{sequences: make(map[string]string)}

	var currentName string
	var currentSeq strings.Builder
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	flush := func() {
		if currentName != "" {
			g.sequences[currentName] = strings.ToUpper(currentSeq.String())
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			flush()
			header := strings.TrimPrefix(line, ">")
			if idx := strings.IndexAny(header, " \t"); idx != -1 {
				header = header[:idx]
			}
			currentName = header
			currentSeq.Reset()
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, errs.NewIOError(path, err)
	}
	return g, nil
}

// Sequence returns the bases in [start, stop) on chr, or an error if the
// chromosome is unknown or the range falls outside its bounds.
func (g *FASTAGenome) Sequence(chr string, start, stop int64) (string, error) {
	seq, ok := g.sequences[chr]
	if !ok {
		return "", fmt.Errorf("unknown chromosome %q", chr)
	}
	if start < 0 || stop > int64(len(seq)) || start >= stop {
		return "", fmt.Errorf("range [%d, %d) out of bounds for chromosome %q of length %d", start, stop, chr, len(seq))
	}
	return seq[start:stop], nil
}
