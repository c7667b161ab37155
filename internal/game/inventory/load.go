package inventory

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

type validatable interface {
	Validate() error
}

// loadDir decodes every *.yaml file in dir into a T with unknown fields
// rejected, validating each record. Files are read in name order.
func loadDir[T any, PT interface {
	*T
	validatable
}](dir string) ([]*T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	out := []*T{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read file %q: %w", path, err)
		}
		var v T
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("cannot parse file %q: %w", path, err)
		}
		if err := PT(&v).Validate(); err != nil {
			return nil, fmt.Errorf("invalid record in %q: %w", path, err)
		}
		out = append(out, &v)
	}
	return out, nil
}
