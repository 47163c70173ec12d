package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "billsync.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "documents:\n  \"BILL-77\": ledger\n  \"CLAIM-\": invoice_claim\n")

	var cfg Config
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Markers["BILL-77"] != "ledger" {
		t.Errorf("markers = %v", cfg.Markers)
	}

	layouts := cfg.Layouts()
	if len(layouts) != 3 {
		t.Fatalf("got %d layouts, want 3", len(layouts))
	}
	byName := map[string]string{}
	for _, l := range layouts {
		byName[l.Name] = l.Marker
	}
	if byName["ledger"] != "BILL-77" {
		t.Errorf("ledger marker = %q, want BILL-77", byName["ledger"])
	}
	if byName["invoice_claim"] != "CLAIM-" {
		t.Errorf("invoice_claim marker = %q, want CLAIM-", byName["invoice_claim"])
	}
	// Unconfigured layouts keep their built-in marker.
	if byName["batch_ledger"] != "R000548" {
		t.Errorf("batch_ledger marker = %q, want R000548", byName["batch_ledger"])
	}
}

func TestLoadFromFile_UnknownLayout(t *testing.T) {
	path := writeConfig(t, "documents:\n  \"X-1\": invoice\n")

	var cfg Config
	if err := cfg.LoadFromFile(path); err == nil {
		t.Fatal("expected error for unknown layout name")
	}
}

func TestLoadFromFile_EmptyMarker(t *testing.T) {
	path := writeConfig(t, "documents:\n  \"\": ledger\n")

	var cfg Config
	if err := cfg.LoadFromFile(path); err == nil {
		t.Fatal("expected error for empty marker")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	var cfg Config
	if err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLayouts_Defaults(t *testing.T) {
	var cfg Config
	layouts := cfg.Layouts()
	if len(layouts) != 3 {
		t.Fatalf("got %d layouts, want 3", len(layouts))
	}
	if layouts[0].Name != "ledger" || layouts[0].Marker != "R000345" {
		t.Errorf("first layout = %+v", layouts[0])
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	bill := filepath.Join(dir, "R000345_a.json")
	workbook := filepath.Join(dir, "analysis.xlsx")
	reference := filepath.Join(dir, "reference.xlsx")
	for _, p := range []string{bill, workbook, reference} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	cfg := Config{
		DocumentPaths: []string{bill},
		WorkbookPath:  workbook,
		ReferencePath: reference,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if err := cfg.ValidateWithDSN(); err == nil {
		t.Fatal("expected error without DSN")
	}
	cfg.DSN = "postgres://localhost/billsync"
	if err := cfg.ValidateWithDSN(); err != nil {
		t.Fatalf("ValidateWithDSN: %v", err)
	}

	cfg.DocumentPaths = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without bills")
	}

	cfg.DocumentPaths = []string{filepath.Join(dir, "missing.json")}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing bill")
	}
}
