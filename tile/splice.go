package tile

import "strings"

// rows holds the output lines produced by a single template line.
type rows []string

// splice appends frag to r column-wise. The fragment starts at the width
// of the widest existing row. Row i receives frag[i] after being padded to
// that width, and rows are added as needed when frag is taller than r.
// Rows below the fragment are left as they are.
func (r rows) splice(frag []string) rows {
	w := 0
	for _, row := range r {
		w = max(w, width(row))
	}

	for i, line := range frag {
		if i >= len(r) {
			r = append(r, "")
		}

		r[i] = padRight(r[i], w) + line
	}

	return r
}

// padRight pads s with spaces to w columns.
func padRight(s string, w int) string {
	if n := w - width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}

	return s
}
