package compare

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
	"github.com/jbethune/genovo/internal/mutation"
)

var significantHeader = []string{"region", "mutation_type", "observed", "expected", "p_value"}

// WriteToFile writes the significant-mutations TSV: region, mutation_type,
// observed, expected, p_value, per §6. Callers are expected to have already
// sorted comparisons ascending by p-value (CompareMutations does this).
func WriteToFile(path string, comparisons []ComparedMutation) error {
	w, err := ioutil.GetWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(significantHeader); err != nil {
		return errs.NewIOError(path, err)
	}
	for _, c := range comparisons {
		row := []string{
			c.Region,
			c.MutationType.String(),
			strconv.FormatUint(c.Observed, 10),
			strconv.FormatFloat(c.Expected, 'g', -1, 64),
			strconv.FormatFloat(c.PValue, 'g', -1, 64),
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

// ReadFromFile reads the significant-mutations TSV written by WriteToFile.
func ReadFromFile(path string) ([]ComparedMutation, error) {
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
			return nil, nil
		}
		return nil, errs.NewParseError(path, 1, "failed to read header: "+err.Error())
	}
	if len(head) != len(significantHeader) {
		return nil, errs.NewParseError(path, 1, "unexpected significant-mutations header shape")
	}

	var result []ComparedMutation
	lineNo := 1
	for {
		row, err := cr.Read()
		if err != nil {
			break
		}
		lineNo++
		if len(row) != len(significantHeader) {
			return nil, errs.NewParseError(path, lineNo, "wrong number of columns")
		}
		t, err := mutation.ParseType(row[1])
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, err.Error())
		}
		observedValue, err := strconv.ParseUint(row[2], 10, 64)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, "bad observed count: "+err.Error())
		}
		expectedValue, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, "bad expected count: "+err.Error())
		}
		pValue, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, "bad p_value: "+err.Error())
		}
		result = append(result, ComparedMutation{
			Region:       row[0],
			MutationType: t,
			Observed:     observedValue,
			Expected:     expectedValue,
			PValue:       pValue,
		})
	}
	return result, nil
}
