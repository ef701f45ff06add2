package geom

import "fmt"

// View identifies one of the three readout projections of the
// detector volume.
type View string

const (
	ViewU View = "U"
	ViewV View = "V"
	ViewW View = "W"
)

// Views lists all readout views in canonical order.
var Views = []View{ViewU, ViewV, ViewW}

// Valid reports whether v is one of the three readout views.
func (v View) Valid() bool {
	return v == ViewU || v == ViewV || v == ViewW
}

// ParseView converts a string into a View, accepting only the three
// canonical identifiers.
func ParseView(s string) (View, error) {
	v := View(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown view %q (want U, V or W)", s)
	}
	return v, nil
}
