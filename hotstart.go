package hydrogr

import (
	"encoding/gob"
	"fmt"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/maseology/mmio"
)

// hotstart is the on-disk form of a warm-start state: the variant name and
// its named state mapping split by value kind.
type hotstart struct {
	Model   string               `cbor:"model"`
	Stores  map[string]float64   `cbor:"stores"`
	Buffers map[string][]float64 `cbor:"buffers,omitempty"`
}

var (
	hsEnc cbor.EncMode
	hsDec cbor.DecMode
)

func init() {
	var err error
	if hsEnc, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic("hydrogr: CBOR encoder initialization failed: " + err.Error())
	}
	if hsDec, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic("hydrogr: CBOR decoder initialization failed: " + err.Error())
	}
}

func newHotstart(v Variant, st State) hotstart {
	hs := hotstart{Model: v.String(), Stores: make(map[string]float64), Buffers: make(map[string][]float64)}
	for k, x := range st.Map(v) {
		switch t := x.(type) {
		case float64:
			hs.Stores[k] = t
		case []float64:
			hs.Buffers[k] = t
		}
	}
	return hs
}

func (hs hotstart) state() (Variant, State, error) {
	v, err := ParseVariant(hs.Model)
	if err != nil {
		return 0, State{}, err
	}
	m := make(map[string]any, len(hs.Stores)+len(hs.Buffers))
	for k, x := range hs.Stores {
		m[k] = x
	}
	for k, x := range hs.Buffers {
		m[k] = x
	}
	st, err := StateFromMap(v, m)
	return v, st, err
}

// SaveState writes a warm-start state. The encoding follows the file
// extension: .gob or .cbor (core deterministic).
func SaveState(fp string, v Variant, st State) error {
	if err := st.Validate(v); err != nil {
		return err
	}
	hs := newHotstart(v, st)
	switch strings.ToLower(mmio.GetExtension(fp)) {
	case ".gob":
		f, err := os.Create(fp)
		if err != nil {
			return fmt.Errorf("SaveState: %w", err)
		}
		defer f.Close()
		if err := gob.NewEncoder(f).Encode(hs); err != nil {
			return fmt.Errorf("SaveState: %w", err)
		}
		return nil
	case ".cbor":
		b, err := hsEnc.Marshal(hs)
		if err != nil {
			return fmt.Errorf("SaveState: %w", err)
		}
		if err := os.WriteFile(fp, b, 0644); err != nil {
			return fmt.Errorf("SaveState: %w", err)
		}
		return nil
	}
	return fmt.Errorf("SaveState: unsupported hotstart format %s", fp)
}

// LoadState reads a state written by SaveState. The result is validated
// against the variant recorded in the file.
func LoadState(fp string) (Variant, State, error) {
	var hs hotstart
	switch strings.ToLower(mmio.GetExtension(fp)) {
	case ".gob":
		f, err := os.Open(fp)
		if err != nil {
			return 0, State{}, fmt.Errorf("LoadState: %w", err)
		}
		defer f.Close()
		if err := gob.NewDecoder(f).Decode(&hs); err != nil {
			return 0, State{}, fmt.Errorf("LoadState: %w", err)
		}
	case ".cbor":
		b, err := os.ReadFile(fp)
		if err != nil {
			return 0, State{}, fmt.Errorf("LoadState: %w", err)
		}
		if err := hsDec.Unmarshal(b, &hs); err != nil {
			return 0, State{}, fmt.Errorf("LoadState: %w", err)
		}
	default:
		return 0, State{}, fmt.Errorf("LoadState: unsupported hotstart format %s", fp)
	}
	return hs.state()
}
