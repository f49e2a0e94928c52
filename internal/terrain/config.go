package terrain

import (
	"encoding/json"
	"fmt"
	"io"

	billy "gopkg.in/src-d/go-billy.v4"
)

// File is the on-disk layout of a terrain configuration.
type File struct {
	Terrain []Def `json:"terrain"`
}

// Decode reads a JSON terrain configuration and builds its table.
func Decode(r io.Reader) (*Table, error) {
	var f File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode terrain config: %w", err)
	}
	return NewTable(f.Terrain)
}

// Encode writes defs as a JSON terrain configuration.
func Encode(w io.Writer, defs []Def) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(File{Terrain: defs})
}

// LoadFile reads a terrain configuration from fs.
func LoadFile(fs billy.Filesystem, name string) (*Table, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open terrain config: %w", err)
	}
	defer f.Close()
	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
