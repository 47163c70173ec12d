package model

// Layout identifies one of the supported bill document layouts. Dispatch is
// by filename marker: a document whose name contains a layout's marker is
// extracted with that layout's rules.
type Layout struct {
	Name   string // e.g. "ledger"
	Marker string // filename substring that selects this layout, e.g. "R000345"
}

// AllLayouts lists the supported document layouts in canonical order.
var AllLayouts = []Layout{
	{Name: "ledger", Marker: "R000345"},
	{Name: "batch_ledger", Marker: "R000548"},
	{Name: "invoice_claim", Marker: "R000530"},
}

// LayoutByName returns the Layout for the given name, or ok=false.
func LayoutByName(name string) (Layout, bool) {
	for _, l := range AllLayouts {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

// LayoutNames returns just the names of all supported layouts.
func LayoutNames() []string {
	names := make([]string, len(AllLayouts))
	for i, l := range AllLayouts {
		names[i] = l.Name
	}
	return names
}
