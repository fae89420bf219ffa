package expect

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
	"github.com/jbethune/genovo/internal/mutation"
)

// header returns the expected-mutations TSV header: "region" followed by one
// column per MutationType in canonical order, per §6.
func header() []string {
	cols := []string{"region"}
	for _, t := range mutation.OrderedTypes() {
		cols = append(cols, t.String())
	}
	return cols
}

// WriteToFile writes the expected-mutations TSV (header + one row per
// region), ported from expect.rs::write_to_file. encoding/csv (stdlib) is
// used since no third-party CSV/TSV library is present anywhere in the
// retrieved example pack.
func WriteToFile(path string, expected ExpectedMutations) error {
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
	for region, counts := range expected {
		row := []string{region}
		for _, t := range mutation.OrderedTypes() {
			row = append(row, strconv.FormatFloat(counts.Get(t), 'g', -1, 64))
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

// ReadFromFile reads the expected-mutations TSV.
func ReadFromFile(path string) (ExpectedMutations, error) {
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
			return ExpectedMutations{}, nil
		}
		return nil, errs.NewParseError(path, 1, "failed to read header: "+err.Error())
	}
	if len(head) != len(header()) {
		return nil, errs.NewParseError(path, 1, fmt.Sprintf("expected %d columns, got %d", len(header()), len(head)))
	}

	result := make(ExpectedMutations)
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
		var counts mutation.ExpectedMutationCounts
		for i, t := range mutation.OrderedTypes() {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, errs.NewParseError(path, lineNo, "bad float: "+err.Error())
			}
			counts.Set(t, v)
		}
		result[row[0]] = counts
	}
	return result, nil
}
