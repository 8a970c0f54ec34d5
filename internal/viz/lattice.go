package viz

import (
	"strings"

	"github.com/san-kum/isingsim/internal/ising"
)

const (
	cellUp   = "██"
	cellDown = "░░"
)

// RenderLattice draws one row of text per lattice row, two columns per site
// so cells look square in a terminal.
func RenderLattice(l *ising.Lattice) string {
	size := l.Size()
	up := SpinUp.Render(cellUp)
	down := SpinDown.Render(cellDown)

	var b strings.Builder
	for r := 0; r < size; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < size; c++ {
			if l.At(r, c).Spin == ising.Up {
				b.WriteString(up)
			} else {
				b.WriteString(down)
			}
		}
	}
	return b.String()
}
