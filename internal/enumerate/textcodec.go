package enumerate

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
	"github.com/jbethune/genovo/internal/mutation"
)

// WriteToFile writes the possible-mutations custom text format described in
// §6: a "#REGION_NAME" line introduces a block, followed by one
// "TYPE_CODE:PROBABILITY" line per event. Ported from enumerate.rs's
// write_to_file.
func WriteToFile(path string, pm PossibleMutations) error {
	w, err := ioutil.GetWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	buf := bufio.NewWriter(w)
	for name, events := range pm {
		if _, err := fmt.Fprintf(buf, "#%s\n", name); err != nil {
			return errs.NewIOError(path, err)
		}
		for _, ev := range events {
			if _, err := fmt.Fprintf(buf, "%d:%s\n", uint8(ev.Type), strconv.FormatFloat(ev.Probability, 'g', -1, 64)); err != nil {
				return errs.NewIOError(path, err)
			}
		}
	}
	if err := buf.Flush(); err != nil {
		return errs.NewIOError(path, err)
	}
	return nil
}

// ReadFromFile reads the possible-mutations custom text format. Ported from
// enumerate.rs's read_from_file, including its requirement that every event
// line follow a "#name" header line.
func ReadFromFile(path string) (PossibleMutations, error) {
	r, err := ioutil.GetReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errs.NewIOError(path, err)
	}
	return parseText(path, buf.Bytes())
}

// parseText parses the custom text format from an in-memory buffer, shared
// by ReadFromFile and the Sereal auto-detecting reader.
func parseText(path string, data []byte) (PossibleMutations, error) {
	result := make(PossibleMutations)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanBuf := make([]byte, 0, 64*1024)
	scanner.Buffer(scanBuf, 16*1024*1024)

	var current string
	haveCurrent := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			current = line[1:]
			haveCurrent = true
			if _, ok := result[current]; !ok {
				result[current] = nil
			}
			continue
		}
		if line == "" {
			continue
		}
		if !haveCurrent {
			return nil, errs.NewParseError(path, lineNo, "expected #name line before any event")
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, errs.NewParseError(path, lineNo, fmt.Sprintf("malformed event line %q", line))
		}
		code, err := strconv.ParseUint(parts[0], 10, 8)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, "bad mutation type code: "+err.Error())
		}
		t, err := mutationTypeFromCode(uint8(code))
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, err.Error())
		}
		prob, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, errs.NewParseError(path, lineNo, "bad probability: "+err.Error())
		}
		result[current] = append(result[current], mutation.NewEvent(t, prob))
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.NewIOError(path, err)
	}
	return result, nil
}

func mutationTypeFromCode(code uint8) (mutation.Type, error) {
	for _, t := range mutation.OrderedTypes() {
		if uint8(t) == code {
			return t, nil
		}
	}
	return mutation.Unknown, fmt.Errorf("unknown mutation type code %d", code)
}
