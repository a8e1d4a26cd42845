// 12 Oct 2026

// Package grid is a uniform spatial hash over a box. Points go into
// cells and we can ask for all points within some radius of a centre,
// or within some distance of any member of a group of points.
//
// Each cell keeps its points as a singly linked list. The lists live in
// two flat arrays, a head for each cell and a (point, next) pair for
// each point, so inserting does not allocate per point.
package grid

import (
	"iter"
	"math"

	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/geom"
)

// Method picks how we walk the cells touched by a sphere.
type Method uint8

const (
	Auto   Method = iota // Simple for small spheres, Sliced for big ones
	Simple               // check every cell in the bounding box of the sphere
	Sliced               // cut the sphere into slabs and rows
)

// When the sphere radius is this many inner cell radii or more, the
// sliced walk visits far fewer cells than the simple one.
const slicedRatio = 10

const (
	noLink    = -1
	untouched = -2
	covered   = -1
)

type link struct{ pt, next int32 }

// Grid is built once over a box, then filled with Insert.
type Grid struct {
	Method  Method
	box     cmmn.Box
	min     [3]float64
	count   [3]int
	cell    [3]float64
	innerR  float64 // half the shortest cell edge
	outerR  float64 // half the cell diagonal
	heads   []int32
	links   []link
	pts     []geom.Vec
	outside []int32 // points strictly outside box, always checked exactly
}

// New makes an empty grid. The number of cells along an axis is the box
// size divided by cellHint, rounded down, but at least one. The real
// cell size is then the box size divided by the number of cells, so it
// is usually a bit bigger than the hint.
func New(box cmmn.Box, cellHint float64) *Grid {
	if cellHint <= 0 {
		panic("grid.New: cell size hint must be positive")
	}
	g := &Grid{box: box}
	size := box.Size()
	sz := [3]float64{float64(size.X), float64(size.Y), float64(size.Z)}
	g.min = [3]float64{float64(box.Min.X), float64(box.Min.Y), float64(box.Min.Z)}
	ncell := 1
	for a := 0; a < 3; a++ {
		n := int(math.Floor(sz[a] / cellHint))
		if n < 1 {
			n = 1
		}
		g.count[a] = n
		if sz[a] > 0 {
			g.cell[a] = sz[a] / float64(n)
		} else {
			g.cell[a] = cellHint // flat box, everything lands in layer 0
		}
		ncell *= n
	}
	g.innerR = 0.5 * min(g.cell[0], g.cell[1], g.cell[2])
	g.outerR = 0.5 * math.Sqrt(g.cell[0]*g.cell[0]+g.cell[1]*g.cell[1]+g.cell[2]*g.cell[2])
	g.heads = make([]int32, ncell)
	for i := range g.heads {
		g.heads[i] = noLink
	}
	return g
}

// Dims returns the number of cells along x, y and z.
func (g *Grid) Dims() [3]int { return g.count }

// CellSize returns the real edge lengths of a cell.
func (g *Grid) CellSize() [3]float64 { return g.cell }

// Len is the number of points inserted.
func (g *Grid) Len() int { return len(g.pts) }

// Insert adds points to the grid and returns the index given to the
// first of them. Indices carry on from earlier calls.
func (g *Grid) Insert(pts []cmmn.Xyz) int {
	first := len(g.pts)
	for _, p := range pts {
		ndx := int32(len(g.pts))
		g.pts = append(g.pts, geom.V(p))
		if !g.box.Contains(p) {
			g.outside = append(g.outside, ndx)
			continue
		}
		c := g.CellOf(p)
		g.links = append(g.links, link{pt: ndx, next: g.heads[c]})
		g.heads[c] = int32(len(g.links) - 1)
	}
	return first
}

// axisCell maps a coordinate on axis a to a cell number, clamped to
// the grid.
func (g *Grid) axisCell(a int, v float64) int {
	f := math.Floor((v - g.min[a]) / g.cell[a])
	if !(f >= 0) { // catches NaN too
		return 0
	}
	if last := float64(g.count[a] - 1); f > last {
		return g.count[a] - 1
	}
	return int(f)
}

// CellOf gives the index of the cell holding p. Points outside the box
// are clamped to the nearest edge cell.
func (g *Grid) CellOf(p cmmn.Xyz) int {
	v := geom.V(p)
	return g.cellIndex(g.axisCell(0, v.X), g.axisCell(1, v.Y), g.axisCell(2, v.Z))
}

func (g *Grid) cellIndex(x, y, z int) int {
	return x + g.count[0]*(y+g.count[1]*z)
}

// bounds returns the low and high edge of cell k along axis a.
func (g *Grid) bounds(a, k int) (float64, float64) {
	return g.min[a] + float64(k)*g.cell[a], g.min[a] + float64(k+1)*g.cell[a]
}

// forEachCell calls visit for every cell that may hold a point within
// r of c. inside is true if the whole cell lies within the sphere.
func (g *Grid) forEachCell(c geom.Vec, r float64, visit func(cell int, inside bool)) {
	m := g.Method
	if m == Auto {
		if r/g.innerR < slicedRatio {
			m = Simple
		} else {
			m = Sliced
		}
	}
	if m == Simple {
		g.forEachCellSimple(c, r, visit)
	} else {
		g.forEachCellSliced(c, r, visit)
	}
}

// visitCell calls visit for cell k if its nearest point lies within
// r of c. inside is true if its farthest corner does too. Both walkers
// go through here, so they agree on every cell.
func (g *Grid) visitCell(c [3]float64, r2 float64, k [3]int, visit func(int, bool)) {
	var near, far float64
	for a := 0; a < 3; a++ {
		lo, hi := g.bounds(a, k[a])
		dlo, dhi := c[a]-lo, hi-c[a] // both positive if c is within the cell along a
		switch {
		case dlo < 0:
			near += dlo * dlo
		case dhi < 0:
			near += dhi * dhi
		}
		f := max(math.Abs(dlo), math.Abs(dhi))
		far += f * f
	}
	if near <= r2 {
		visit(g.cellIndex(k[0], k[1], k[2]), far <= r2)
	}
}

// pad widens cell ranges a little, so rounding never loses a cell that
// visitCell would accept.
func (g *Grid) pad(r float64) float64 { return 1e-9 * (r + g.outerR) }

// forEachCellSimple runs over the bounding box of the sphere.
func (g *Grid) forEachCellSimple(c geom.Vec, r float64, visit func(int, bool)) {
	cc, r2 := [3]float64{c.X, c.Y, c.Z}, r*r
	rp := r + g.pad(r)
	x0, x1 := g.axisCell(0, c.X-rp), g.axisCell(0, c.X+rp)
	y0, y1 := g.axisCell(1, c.Y-rp), g.axisCell(1, c.Y+rp)
	z0, z1 := g.axisCell(2, c.Z-rp), g.axisCell(2, c.Z+rp)
	for z := z0; z <= z1; z++ {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				g.visitCell(cc, r2, [3]int{x, y, z}, visit)
			}
		}
	}
}

// sliceRadius gives the largest radius of the cross section of a
// sphere (or circle) of radius r centred at c, over the slab lo..hi
// along one axis. It is zero if the slab misses the sphere.
func sliceRadius(c, r, lo, hi float64) float64 {
	if lo <= c && c <= hi {
		return r
	}
	d := min(math.Abs(lo-c), math.Abs(hi-c))
	return math.Sqrt(max(r*r-d*d, 0))
}

// forEachCellSliced walks z slabs, then y rows within each slab, then
// the x range within each row. Each range comes from the widest cross
// section of the sphere over the slab or row, so far fewer cells are
// looked at than in the bounding box.
func (g *Grid) forEachCellSliced(c geom.Vec, r float64, visit func(int, bool)) {
	cc, r2 := [3]float64{c.X, c.Y, c.Z}, r*r
	pad := g.pad(r)
	z0, z1 := g.axisCell(2, c.Z-r-pad), g.axisCell(2, c.Z+r+pad)
	for z := z0; z <= z1; z++ {
		zlo, zhi := g.bounds(2, z)
		rXY := sliceRadius(c.Z, r, zlo, zhi) + pad
		y0, y1 := g.axisCell(1, c.Y-rXY), g.axisCell(1, c.Y+rXY)
		for y := y0; y <= y1; y++ {
			ylo, yhi := g.bounds(1, y)
			rX := sliceRadius(c.Y, rXY, ylo, yhi) + pad
			x0, x1 := g.axisCell(0, c.X-rX), g.axisCell(0, c.X+rX)
			for x := x0; x <= x1; x++ {
				g.visitCell(cc, r2, [3]int{x, y, z}, visit)
			}
		}
	}
}

func dist2(a, b geom.Vec) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// ForEachWithinRadius calls visit for every point with squared distance
// to center no more than r*r. inside says the point came from a cell
// lying entirely within the sphere, so it was not checked one by one.
func (g *Grid) ForEachWithinRadius(center cmmn.Xyz, r float64, visit func(i int, inside bool)) {
	c := geom.V(center)
	r2 := r * r
	g.forEachCell(c, r, func(cell int, inside bool) {
		for l := g.heads[cell]; l != noLink; l = g.links[l].next {
			pt := g.links[l].pt
			if inside || dist2(c, g.pts[pt]) <= r2 {
				visit(int(pt), inside)
			}
		}
	})
	for _, pt := range g.outside {
		if dist2(c, g.pts[pt]) <= r2 {
			visit(int(pt), false)
		}
	}
}

type groupNode struct {
	p    geom.Vec
	next int32
}

// ForEachWithinDistOfGroup calls visit once for every point lying within
// dist of at least one point of group. Cells are visited in index order.
//
// First every group point marks the cells its sphere touches. A cell
// completely inside one of the spheres needs no more checks. Otherwise
// the cell collects the group points whose sphere touches it, and its
// points are only checked against those.
func (g *Grid) ForEachWithinDistOfGroup(group iter.Seq[cmmn.Xyz], dist float64, visit func(i int)) {
	r2 := dist * dist
	state := make([]int32, len(g.heads))
	for i := range state {
		state[i] = untouched
	}
	var nodes []groupNode
	var all []geom.Vec // only needed for points outside the box
	for p := range group {
		v := geom.V(p)
		all = append(all, v)
		g.forEachCell(v, dist, func(cell int, inside bool) {
			switch s := state[cell]; {
			case inside:
				state[cell] = covered
			case s == covered:
			default:
				next := s
				if s == untouched {
					next = noLink
				}
				nodes = append(nodes, groupNode{p: v, next: next})
				state[cell] = int32(len(nodes) - 1)
			}
		})
	}

	for cell, s := range state {
		if s == untouched {
			continue
		}
		for l := g.heads[cell]; l != noLink; l = g.links[l].next {
			pt := g.links[l].pt
			if s == covered {
				visit(int(pt))
				continue
			}
			for n := s; n != noLink; n = nodes[n].next {
				if dist2(g.pts[pt], nodes[n].p) <= r2 {
					visit(int(pt))
					break
				}
			}
		}
	}

	for _, pt := range g.outside {
		for _, v := range all {
			if dist2(g.pts[pt], v) <= r2 {
				visit(int(pt))
				break
			}
		}
	}
}
