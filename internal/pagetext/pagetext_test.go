package pagetext

import (
	"os"
	"path/filepath"
	"testing"
)

func writePageText(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write page text: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writePageText(t, `[{"page":1,"text":"first"},{"page":2,"text":"second\nline"}]`)

	pages, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Page != 1 || pages[0].Text != "first" {
		t.Errorf("page 0 = %+v", pages[0])
	}
	if pages[1].Text != "second\nline" {
		t.Errorf("page 1 text = %q", pages[1].Text)
	}
}

func TestLoad_Empty(t *testing.T) {
	path := writePageText(t, `[]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty page array")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writePageText(t, `{"page":1}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed page text")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
