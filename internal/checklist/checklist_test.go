package checklist

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checklist.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"equipment": [
			{"name": "Excavator 320", "items": [
				{"id": "I1", "section": "Engine", "text": "Oil level"},
				{"id": "I2", "text": "Hoses"}
			]},
			{"name": "Forklift H25", "items": [
				{"id": "I1", "text": "Tires"}
			]}
		]
	}`)

	defs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	names := defs.Names()
	if len(names) != 2 || names[0] != "Excavator 320" || names[1] != "Forklift H25" {
		t.Errorf("unexpected names: %v", names)
	}

	items := defs.ItemsFor("Excavator 320")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "I1" || items[0].Section != "Engine" || items[0].Text != "Oil level" {
		t.Errorf("unexpected item: %+v", items[0])
	}

	if defs.ItemsFor("Bulldozer D9") != nil {
		t.Error("expected nil for unknown equipment")
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"equipment": [`},
		{"no equipment", `{"equipment": []}`},
		{"empty name", `{"equipment": [{"name": "", "items": [{"id": "I1", "text": "x"}]}]}`},
		{"no items", `{"equipment": [{"name": "Crane", "items": []}]}`},
	}
	for _, tc := range cases {
		path := writeConfig(t, tc.content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
