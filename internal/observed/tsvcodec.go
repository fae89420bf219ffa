package observed

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
	"github.com/jbethune/genovo/internal/mutation"
)

var classifiedHeader = []string{"region", "chromosome", "position", "mutation_type", "change"}

// WriteToFile writes the classified-mutations TSV: one row per variant,
// columns region, chromosome, position, mutation_type (string), change
// ("REF->ALT"), per §6.
func WriteToFile(path string, mutations []AnnotatedPointMutation) error {
	w, err := ioutil.GetWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(classifiedHeader); err != nil {
		return errs.NewIOError(path, err)
	}
	for _, m := range mutations {
		row := []string{
			m.RegionName,
			m.Chromosome,
			strconv.FormatInt(m.Position, 10),
			m.MutationType.String(),
			m.Change(),
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

// ReadFromFile reads the classified-mutations TSV written by WriteToFile.
func ReadFromFile(path string) ([]AnnotatedPointMutation, error) {
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
	if len(head) != len(classifiedHeader) {
		return nil, errs.NewParseError(path, 1, "unexpected classified-mutations header shape")
	}

	var result []AnnotatedPointMutation
	lineNo := 1
	for {
		row, err := cr.Read()
		if err != nil {
			break
		}
		lineNo++
		if len(row) != len(classifiedHeader) {
			return nil, errs.NewParseError(path, lineNo, "wrong number of columns")
		}
		pos, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, "bad position: "+err.Error())
		}
		t, err := mutation.ParseType(row[3])
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, err.Error())
		}
		from, to, err := ParseChange(row[4])
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, err.Error())
		}
		result = append(result, AnnotatedPointMutation{
			RegionName:   row[0],
			MutationType: t,
			Chromosome:   row[1],
			Position:     pos,
			From:         from,
			To:           to,
		})
	}
	return result, nil
}
