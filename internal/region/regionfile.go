package region

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
)

// WriteSequenceAnnotationsToFile persists annotations in the genomic-regions
// TSV format (§6): one line per transcript, `;`-joined list fields, no
// header — following this codebase's preference (consistent with the
// original Rust CLI) for a hand-rolled tab writer over a CSV library, since
// no CSV package appears anywhere in the example pack.
func WriteSequenceAnnotationsToFile(path string, annotations []SeqAnnotation) error {
	w, err := ioutil.GetWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	bw := bufio.NewWriter(w)
	for _, a := range annotations {
		exonStrs := make([]string, len(a.Exons))
		for i, e := range a.Exons {
			exonStrs[i] = e.String()
		}
		cdsStrs := make([]string, len(a.CDSs))
		phaseStrs := make([]string, len(a.CDSs))
		for i, c := range a.CDSs {
			cdsStrs[i] = c.Range.String()
			phaseStrs[i] = string(c.Phase.Byte())
		}

		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Name, a.Chr, a.Strand.String(), a.Range.String(),
			strings.Join(exonStrs, ";"),
			strings.Join(cdsStrs, ";"),
			strings.Join(phaseStrs, ";"),
		)
		if _, err := bw.WriteString(line); err != nil {
			return errs.NewIOError(path, err)
		}
	}
	return bw.Flush()
}

// ReadSequenceAnnotationsFromFile reads the genomic-regions TSV format back
// into a slice of SeqAnnotation, optionally restricted to a single id.
func ReadSequenceAnnotationsFromFile(path string, filterForID string) ([]SeqAnnotation, error) {
	r, err := ioutil.GetReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var result []SeqAnnotation
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return nil, errs.NewParseError(path, lineNo, fmt.Sprintf("expected 7 tab-delimited fields, got %d", len(fields)))
		}

		name, chr, strandStr, rangeStr, exonsStr, cdsStr, phaseStr := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]
		if filterForID != "" && filterForID != name {
			continue
		}

		strand, err := ParseStrand(strandStr[0])
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, err.Error())
		}
		rng, err := parseRange(rangeStr)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, err.Error())
		}
		exons, err := parseIntervalList(exonsStr)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, err.Error())
		}
		cdss, err := parseCDSList(cdsStr, phaseStr)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, err.Error())
		}

		result = append(result, NewSeqAnnotation(name, chr, rng, strand, exons, cdss))
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.NewIOError(path, err)
	}
	return result, nil
}

func parseRange(s string) (Interval, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("bad range %q", s)
	}
	start, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("bad range start %q: %w", s, err)
	}
	stop, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("bad range stop %q: %w", s, err)
	}
	return NewInterval(start, stop)
}

func parseIntervalList(s string) ([]Interval, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	result := make([]Interval, len(parts))
	for i, p := range parts {
		ivl, err := parseRange(p)
		if err != nil {
			return nil, err
		}
		result[i] = ivl
	}
	return result, nil
}

func parseCDSList(rangesStr, phasesStr string) ([]CDS, error) {
	if rangesStr == "" {
		return nil, nil
	}
	ranges, err := parseIntervalList(rangesStr)
	if err != nil {
		return nil, err
	}
	phases := strings.Split(phasesStr, ";")
	if len(phases) != len(ranges) {
		return nil, fmt.Errorf("mismatched CDS range/phase counts: %d ranges, %d phases", len(ranges), len(phases))
	}
	result := make([]CDS, len(ranges))
	for i, r := range ranges {
		if len(phases[i]) != 1 {
			return nil, fmt.Errorf("bad CDS phase %q", phases[i])
		}
		phase, err := ParsePhase(phases[i][0])
		if err != nil {
			return nil, err
		}
		result[i] = CDS{Range: r, Phase: phase}
	}
	return result, nil
}
