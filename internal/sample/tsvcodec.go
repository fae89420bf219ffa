package sample

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
	"github.com/jbethune/genovo/internal/mutation"
)

func header() []string {
	cols := []string{"region"}
	for _, t := range mutation.OrderedTypes() {
		cols = append(cols, t.String())
	}
	return cols
}

// WriteToFile writes the sampled-mutations TSV: "region" plus one column per
// MutationType holding a pipe-joined histogram, per §6. Ported from
// sample.rs::write_to_file.
func WriteToFile(path string, sampled SampledMutations) error {
	w, err := ioutil.GetWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(header()); err != nil {
		return errs.NewIOError(path, err)
	}
	for region, distributions := range sampled {
		row := make([]string, 1, len(mutation.OrderedTypes())+1)
		row[0] = region
		for _, t := range mutation.OrderedTypes() {
			if counter, ok := distributions[t]; ok {
				row = append(row, counter.String())
			} else {
				row = append(row, "")
			}
		}
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

// ReadFromFile reads the sampled-mutations TSV.
func ReadFromFile(path string) (SampledMutations, error) {
	r, err := ioutil.GetReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return SampledMutations{}, nil
		}
		return nil, errs.NewParseError(path, 1, "failed to read header: "+err.Error())
	}
	if len(head) != len(header()) {
		return nil, errs.NewParseError(path, 1, fmt.Sprintf("expected %d columns, got %d", len(header()), len(head)))
	}

	result := make(SampledMutations)
	lineNo := 1
	for {
		row, err := cr.Read()
		if err != nil {
			break
		}
		lineNo++
		if len(row) != len(header()) {
			return nil, errs.NewParseError(path, lineNo, fmt.Sprintf("expected %d columns, got %d", len(header()), len(row)))
		}
		distributions := make(map[mutation.Type]*mutation.DefaultCounter)
		for i, t := range mutation.OrderedTypes() {
			cell := row[i+1]
			if cell == "" {
				continue
			}
			counter, err := mutation.ParseDefaultCounter(cell)
			if err != nil {
				return nil, errs.NewParseError(path, lineNo, "bad histogram: "+err.Error())
			}
			distributions[t] = counter
		}
		result[row[0]] = distributions
	}
	return result, nil
}
