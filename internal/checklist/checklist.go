// Package checklist loads the per-equipment checklist definitions from a
// JSON file. Definitions are read once at boot; editing the file requires
// a restart.
package checklist

import (
	"encoding/json"
	"fmt"
	"os"
)

type Item struct {
	ID      string `json:"id"`
	Section string `json:"section,omitempty"`
	Text    string `json:"text"`
}

type Equipment struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type Definitions struct {
	Equipment []Equipment `json:"equipment"`
}

// Load reads and validates the definitions file.
func Load(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checklist config: %w", err)
	}

	var defs Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse checklist config: %w", err)
	}
	if len(defs.Equipment) == 0 {
		return nil, fmt.Errorf("checklist config %s defines no equipment", path)
	}
	for _, e := range defs.Equipment {
		if e.Name == "" {
			return nil, fmt.Errorf("checklist config %s: equipment with empty name", path)
		}
		if len(e.Items) == 0 {
			return nil, fmt.Errorf("checklist config %s: equipment %q has no items", path, e.Name)
		}
	}
	return &defs, nil
}

// Names returns the defined equipment names in file order.
func (d *Definitions) Names() []string {
	names := make([]string, 0, len(d.Equipment))
	for _, e := range d.Equipment {
		names = append(names, e.Name)
	}
	return names
}

// ItemsFor returns the checklist items for the named equipment, or nil
// when the equipment is not defined.
func (d *Definitions) ItemsFor(name string) []Item {
	for _, e := range d.Equipment {
		if e.Name == name {
			return e.Items
		}
	}
	return nil
}
