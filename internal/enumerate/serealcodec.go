package enumerate

import (
	"io"

	"github.com/Sereal/Sereal/Go/sereal"
	"github.com/jbethune/genovo/internal/errs"
	"github.com/jbethune/genovo/internal/ioutil"
	"github.com/jbethune/genovo/internal/mutation"
)

// Sereal magic bytes, used to auto-detect a binary possible-mutations
// artifact without requiring a distinct file extension. Ported from
// internal/cache/sereal.go's format-detection idiom.
var (
	serealMagicStandard = []byte{0x3D, 0x73, 0x72, 0x6C} // =srl
	serealMagicHighBit  = []byte{0x3D, 0xF3, 0x72, 0x6C} // =\xF3rl
)

// IsSereal reports whether data begins with a Sereal magic header.
func IsSereal(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return matchMagic(data[:4], serealMagicStandard) || matchMagic(data[:4], serealMagicHighBit)
}

func matchMagic(a, b []byte) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type wireEvent struct {
	Type        uint8
	Probability float64
}

// wirePossibleMutations is the Sereal-serializable shape of PossibleMutations;
// mutation.Type is kept as a plain uint8 on the wire to avoid depending on
// Sereal's handling of named integer types.
type wirePossibleMutations map[string][]wireEvent

func toWire(pm PossibleMutations) wirePossibleMutations {
	w := make(wirePossibleMutations, len(pm))
	for name, events := range pm {
		wes := make([]wireEvent, len(events))
		for i, e := range events {
			wes[i] = wireEvent{Type: uint8(e.Type), Probability: e.Probability}
		}
		w[name] = wes
	}
	return w
}

func fromWire(w wirePossibleMutations) (PossibleMutations, error) {
	pm := make(PossibleMutations, len(w))
	for name, wes := range w {
		events := make([]mutation.Event, len(wes))
		for i, we := range wes {
			t, err := mutationTypeFromCode(we.Type)
			if err != nil {
				return nil, err
			}
			events[i] = mutation.NewEvent(t, we.Probability)
		}
		pm[name] = events
	}
	return pm, nil
}

// WriteSerealFile encodes pm with Sereal, a more compact alternative to the
// custom text format for large possible-mutations artifacts, per
// SPEC_FULL.md's domain-stack wiring.
func WriteSerealFile(path string, pm PossibleMutations) error {
	data, err := sereal.Marshal(toWire(pm))
	if err != nil {
		return errs.NewIOError(path, err)
	}
	w, err := ioutil.GetWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()
	if _, err := w.Write(data); err != nil {
		return errs.NewIOError(path, err)
	}
	return nil
}

// ReadSerealFile decodes a Sereal-encoded possible-mutations artifact.
func ReadSerealFile(path string) (PossibleMutations, error) {
	r, err := ioutil.GetReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.NewIOError(path, err)
	}

	var w wirePossibleMutations
	if err := sereal.Unmarshal(data, &w); err != nil {
		return nil, errs.NewParseError(path, 0, "invalid Sereal payload: "+err.Error())
	}
	return fromWire(w)
}

// ReadAutoDetect reads a possible-mutations artifact, sniffing whether it is
// Sereal-encoded or the plain text format.
func ReadAutoDetect(path string) (PossibleMutations, error) {
	r, err := ioutil.GetReader(path)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, errs.NewIOError(path, err)
	}

	if IsSereal(data) {
		var w wirePossibleMutations
		if err := sereal.Unmarshal(data, &w); err != nil {
			return nil, errs.NewParseError(path, 0, "invalid Sereal payload: "+err.Error())
		}
		return fromWire(w)
	}

	return parseText(path, data)
}
