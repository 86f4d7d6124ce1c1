// Package subsidy serves the static table of regional rooftop solar subsidy rules.
package subsidy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

var ErrRegionNotFound = errors.New("region not found")

// Region is one state or territory and its applicable schemes.
type Region struct {
	Name    string   `json:"name" mapstructure:"name"`
	Schemes []string `json:"schemes" mapstructure:"schemes"`
}

// Table is read-only after construction.
type Table struct {
	byKey map[string]Region
	names []string
}

// Load reads a YAML table of the form `regions: [{name, schemes}]`.
func Load(path string) (*Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read subsidy table %s: %w", path, err)
	}
	var regions []Region
	if err := v.UnmarshalKey("regions", &regions); err != nil {
		return nil, fmt.Errorf("decode subsidy table %s: %w", path, err)
	}
	return New(regions)
}

// New builds a table, rejecting blank or duplicate region names.
func New(regions []Region) (*Table, error) {
	t := &Table{byKey: make(map[string]Region, len(regions))}
	for _, r := range regions {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return nil, errors.New("subsidy region with empty name")
		}
		k := key(r.Name)
		if _, dup := t.byKey[k]; dup {
			return nil, fmt.Errorf("duplicate subsidy region %q", r.Name)
		}
		r.Schemes = append([]string(nil), r.Schemes...)
		t.byKey[k] = r
		t.names = append(t.names, r.Name)
	}
	sort.Strings(t.names)
	return t, nil
}

func key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Regions returns region names sorted alphabetically.
func (t *Table) Regions() []string {
	return append([]string(nil), t.names...)
}

// Lookup finds a region by name, ignoring case and extra whitespace.
func (t *Table) Lookup(name string) (Region, error) {
	r, ok := t.byKey[key(name)]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrRegionNotFound, name)
	}
	r.Schemes = append([]string(nil), r.Schemes...)
	return r, nil
}
