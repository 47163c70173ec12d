package model

import "testing"

func TestLayoutByName(t *testing.T) {
	l, ok := LayoutByName("batch_ledger")
	if !ok {
		t.Fatal("batch_ledger not registered")
	}
	if l.Marker != "R000548" {
		t.Errorf("marker = %q, want R000548", l.Marker)
	}

	if _, ok := LayoutByName("invoice"); ok {
		t.Error("unregistered name should not resolve")
	}
}

func TestLayoutNames(t *testing.T) {
	names := LayoutNames()
	want := []string{"ledger", "batch_ledger", "invoice_claim"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
