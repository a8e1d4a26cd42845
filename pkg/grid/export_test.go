package grid

import (
	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/geom"
)

// Export some internal functions for testing

// ForEachCell walks cells with a given method.
func (g *Grid) ForEachCell(m Method, c cmmn.Xyz, r float64, visit func(int, bool)) {
	if m == Simple {
		g.forEachCellSimple(geom.V(c), r, visit)
	} else {
		g.forEachCellSliced(geom.V(c), r, visit)
	}
}

// CellBounds returns the low and high corner of a cell.
func (g *Grid) CellBounds(cell int) (lo, hi geom.Vec) {
	x := cell % g.count[0]
	y := (cell / g.count[0]) % g.count[1]
	z := cell / (g.count[0] * g.count[1])
	lo.X, hi.X = g.bounds(0, x)
	lo.Y, hi.Y = g.bounds(1, y)
	lo.Z, hi.Z = g.bounds(2, z)
	return lo, hi
}

var SliceRadius = sliceRadius
