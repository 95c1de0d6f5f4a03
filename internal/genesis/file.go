package genesis

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type document struct {
	Balances []entry `yaml:"balances"`
}

// FileSource reads allocations from a YAML document of the form
//
//	balances:
//	  - account: alice
//	    balance: "100"
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(_ context.Context) ([]Allocation, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open genesis file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML genesis document.
func Decode(r io.Reader) ([]Allocation, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return []Allocation{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidGenesis, err)
	}
	return parseEntries(doc.Balances)
}
