package patterns

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk layout:
//
//	version: corp-2024-06
//	merge_defaults: true
//	signatures:
//	  - id: pi-custom
//	    family: prompt_injection
//	    kind: literal
//	    expr: "ignore the guard"
//	    severity: reject
type tableFile struct {
	Version       string       `yaml:"version"`
	MergeDefaults bool         `yaml:"merge_defaults"`
	Signatures    []Definition `yaml:"signatures"`
}

// LoadYAML decodes and compiles a table file. Unknown keys are rejected.
// With merge_defaults the built-in signatures come first and file signatures
// are appended; ids must still be unique across both.
func LoadYAML(r io.Reader) (*Table, error) {
	var f tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTableFile)
		}
		return nil, errors.Join(ErrInvalidTableFile, err)
	}

	defs := f.Signatures
	if f.MergeDefaults {
		defs = append(DefaultDefinitions(), f.Signatures...)
	}

	t, err := Compile(f.Version, defs)
	if err != nil {
		return nil, errors.Join(ErrInvalidTableFile, err)
	}
	return t, nil
}

// LoadFile reads a table file from disk.
func LoadFile(path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern table: %w", err)
	}
	defer fh.Close()

	return LoadYAML(fh)
}
