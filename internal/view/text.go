package view

import (
	"fmt"
	"strings"
)

// Text renders v for a terminal.
func (r *Renderer) Text(v View) string {
	var b strings.Builder
	if v.Empty {
		b.WriteString(r.labels.Empty)
		b.WriteByte('\n')
		return b.String()
	}

	for i, row := range v.Rows {
		fmt.Fprintf(&b, "%d. %s  %d × %s = %s  [%s]\n",
			i+1, row.Name, row.Qty, row.UnitPrice, row.Subtotal, row.ID)
	}
	fmt.Fprintf(&b, "Items: %d\n", v.Count)
	fmt.Fprintf(&b, "Total: %s\n", v.Total)
	return b.String()
}
