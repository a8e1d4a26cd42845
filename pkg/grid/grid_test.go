package grid_test

import (
	"maps"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/geom"
	. "github.com/andrew-torda/dssp/pkg/grid"
)

var unitBox = cmmn.Box{Min: cmmn.Xyz{X: 0, Y: 0, Z: 0}, Max: cmmn.Xyz{X: 20, Y: 20, Z: 20}}

// randCloud makes n points spread uniformly over box b.
func randCloud(rnd *rand.Rand, n int, b cmmn.Box) []cmmn.Xyz {
	sz := b.Size()
	pts := make([]cmmn.Xyz, n)
	for i := range pts {
		pts[i] = cmmn.Xyz{
			X: b.Min.X + sz.X*rnd.Float32(),
			Y: b.Min.Y + sz.Y*rnd.Float32(),
			Z: b.Min.Z + sz.Z*rnd.Float32(),
		}
	}
	return pts
}

func brute(pts []cmmn.Xyz, c cmmn.Xyz, r float64) []int {
	var ret []int
	for i, p := range pts {
		if geom.Dist2(p, c) <= r*r {
			ret = append(ret, i)
		}
	}
	return ret
}

func TestDims(t *testing.T) {
	g := New(unitBox, 3)
	if d := g.Dims(); d != [3]int{6, 6, 6} {
		t.Fatalf("dims got %v wanted 6 6 6", d)
	}
	if c := g.CellSize(); math.Abs(c[0]-20.0/6) > 1e-12 {
		t.Fatalf("cell size got %v", c)
	}
	flat := cmmn.Box{Max: cmmn.Xyz{X: 1, Y: 0, Z: 50}}
	g = New(flat, 5)
	if d := g.Dims(); d != [3]int{1, 1, 10} {
		t.Fatalf("flat box dims got %v wanted 1 1 10", d)
	}
}

var cellOfTests = []struct {
	p    cmmn.Xyz
	cell int
}{
	{cmmn.Xyz{X: 0, Y: 0, Z: 0}, 0},
	{cmmn.Xyz{X: 19.99, Y: 0, Z: 0}, 1},
	{cmmn.Xyz{X: 20, Y: 20, Z: 20}, 7}, // on the far face, clamped
	{cmmn.Xyz{X: -5, Y: 30, Z: 0}, 2},  // outside, clamped
	{cmmn.Xyz{X: 10, Y: 10, Z: 10}, 7},
	{cmmn.Xyz{X: 9.99, Y: 9.99, Z: 10}, 4},
}

func TestCellOf(t *testing.T) {
	g := New(unitBox, 10)
	for _, tt := range cellOfTests {
		if c := g.CellOf(tt.p); c != tt.cell {
			t.Errorf("CellOf %v got %d wanted %d", tt.p, c, tt.cell)
		}
	}
}

func TestSliceRadius(t *testing.T) {
	for _, tt := range []struct{ c, r, lo, hi, want float64 }{
		{0, 5, -1, 3, 5}, // slab holds the centre
		{0, 5, 3, 4, 4},
		{0, 5, -4, -3, 4},
		{0, 5, 6, 7, 0}, // slab misses the sphere
	} {
		if got := SliceRadius(tt.c, tt.r, tt.lo, tt.hi); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("SliceRadius %v got %v wanted %v", tt, got, tt.want)
		}
	}
}

// TestCellWalks checks each cell walker on its own. Every cell that the
// sphere really touches must be visited, no other cell may be, and any
// cell called inside must have all its corners in the sphere.
func TestCellWalks(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	g := New(unitBox, 1.3)
	for _, m := range []Method{Simple, Sliced} {
		for n := 0; n < 40; n++ {
			c := randCloud(rnd, 1, unitBox.Grow(3))[0]
			r := 0.2 + 10*rnd.Float64()
			cv := geom.V(c)
			seen := make(map[int]bool)
			g.ForEachCell(m, c, r, func(cell int, inside bool) {
				if seen[cell] {
					t.Fatalf("method %d visited cell %d twice", m, cell)
				}
				seen[cell] = true
				lo, hi := g.CellBounds(cell)
				dx := max(lo.X-cv.X, 0, cv.X-hi.X)
				dy := max(lo.Y-cv.Y, 0, cv.Y-hi.Y)
				dz := max(lo.Z-cv.Z, 0, cv.Z-hi.Z)
				if dx*dx+dy*dy+dz*dz > r*r+1e-9 {
					t.Fatalf("method %d visited cell %d which the sphere misses", m, cell)
				}
				if !inside {
					return
				}
				for _, x := range []float64{lo.X, hi.X} {
					for _, y := range []float64{lo.Y, hi.Y} {
						for _, z := range []float64{lo.Z, hi.Z} {
							d := geom.Vec{X: x, Y: y, Z: z}.Sub(cv)
							if d.Dot(d) > r*r+1e-9 {
								t.Fatalf("method %d cell %d called inside but corner is out", m, cell)
							}
						}
					}
				}
			})
			d := g.Dims()
			for cell := 0; cell < d[0]*d[1]*d[2]; cell++ {
				lo, hi := g.CellBounds(cell)
				dx := max(lo.X-cv.X, 0, cv.X-hi.X)
				dy := max(lo.Y-cv.Y, 0, cv.Y-hi.Y)
				dz := max(lo.Z-cv.Z, 0, cv.Z-hi.Z)
				if dx*dx+dy*dy+dz*dz < r*r-1e-9 && !seen[cell] {
					t.Fatalf("method %d missed cell %d, centre %v r %f", m, cell, c, r)
				}
			}
		}
	}
}

type cellFlags map[int]bool

func walk(g *Grid, m Method, c cmmn.Xyz, r float64) cellFlags {
	ret := make(cellFlags)
	g.ForEachCell(m, c, r, func(cell int, inside bool) { ret[cell] = inside })
	return ret
}

// TestWalksAgree runs both walkers on the same spheres. They must give
// the same cells with the same inside flags, and so the same inside
// flags for every point found.
func TestWalksAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	pts := randCloud(rnd, 3000, unitBox)
	for _, hint := range []float64{0.7, 1.3, 3} {
		g := New(unitBox, hint)
		g.Insert(pts)
		for n := 0; n < 50; n++ {
			c := randCloud(rnd, 1, unitBox.Grow(2))[0]
			r := 1 + 9*rnd.Float64()
			simple, sliced := walk(g, Simple, c, r), walk(g, Sliced, c, r)
			if len(simple) != len(sliced) {
				t.Fatalf("hint %v r %v: simple %d cells, sliced %d", hint, r, len(simple), len(sliced))
			}
			for cell, inside := range simple {
				if in2, ok := sliced[cell]; !ok || in2 != inside {
					t.Fatalf("hint %v r %v cell %d: simple %t, sliced %t %t", hint, r, cell, inside, in2, ok)
				}
			}
			byMethod := make([]map[int]bool, 2)
			for k, m := range []Method{Simple, Sliced} {
				g.Method = m
				byMethod[k] = make(map[int]bool)
				g.ForEachWithinRadius(c, r, func(i int, inside bool) { byMethod[k][i] = inside })
			}
			g.Method = Auto
			if !maps.Equal(byMethod[0], byMethod[1]) {
				t.Fatalf("hint %v r %v: points or inside flags differ between walkers", hint, r)
			}
		}
	}
}

// TestWithinRadius compares radius queries against brute force for
// every method, including spheres big enough to force the sliced walk.
func TestWithinRadius(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	pts := randCloud(rnd, 3000, unitBox)
	radii := []float64{0.3, 1, 2.5, 5, 12}
	for _, hint := range []float64{0.5, 1, 4} {
		g := New(unitBox, hint)
		if first := g.Insert(pts); first != 0 {
			t.Fatalf("first index %d", first)
		}
		for _, m := range []Method{Auto, Simple, Sliced} {
			g.Method = m
			for n := 0; n < 20; n++ {
				c := randCloud(rnd, 1, unitBox.Grow(2))[0]
				for _, r := range radii {
					var got []int
					g.ForEachWithinRadius(c, r, func(i int, inside bool) {
						got = append(got, i)
					})
					slices.Sort(got)
					want := brute(pts, c, r)
					if !slices.Equal(got, want) {
						t.Fatalf("hint %v method %d r %v: got %d points, wanted %d",
							hint, m, r, len(got), len(want))
					}
				}
			}
		}
	}
}

// TestOutside puts points outside the box. They must still be found.
func TestOutside(t *testing.T) {
	g := New(unitBox, 2)
	pts := []cmmn.Xyz{{X: 25, Y: 10, Z: 10}, {X: 10, Y: 10, Z: 10}, {X: -3, Y: -3, Z: -3}}
	g.Insert(pts)
	if g.Len() != 3 {
		t.Fatalf("Len got %d", g.Len())
	}
	for _, tt := range []struct {
		c    cmmn.Xyz
		r    float64
		want []int
	}{
		{cmmn.Xyz{X: 24, Y: 10, Z: 10}, 1.5, []int{0}},
		{cmmn.Xyz{X: 19, Y: 10, Z: 10}, 1.5, nil},
		{cmmn.Xyz{X: -2, Y: -2, Z: -2}, 2, []int{2}},
		{cmmn.Xyz{X: 10, Y: 10, Z: 10}, 16, []int{0, 1}},
		{cmmn.Xyz{X: 10, Y: 10, Z: 10}, 23, []int{0, 1, 2}},
	} {
		var got []int
		g.ForEachWithinRadius(tt.c, tt.r, func(i int, _ bool) { got = append(got, i) })
		slices.Sort(got)
		if !slices.Equal(got, tt.want) {
			t.Errorf("centre %v r %v got %v wanted %v", tt.c, tt.r, got, tt.want)
		}
	}
}

// TestWithinDistOfGroup checks the group query against brute force and
// that nothing is reported twice.
func TestWithinDistOfGroup(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	pts := randCloud(rnd, 2000, unitBox)
	pts = append(pts, cmmn.Xyz{X: 21, Y: 5, Z: 5}) // one outsider
	small := cmmn.Box{Min: cmmn.Xyz{X: 15, Y: 2, Z: 2}, Max: cmmn.Xyz{X: 22, Y: 8, Z: 8}}
	group := randCloud(rnd, 30, small)
	for _, hint := range []float64{0.3, 1.5, 5} {
		g := New(unitBox, hint)
		g.Insert(pts)
		for _, d := range []float64{0.5, 2, 4} {
			seen := make(map[int]bool)
			var got []int
			g.ForEachWithinDistOfGroup(slices.Values(group), d, func(i int) {
				if seen[i] {
					t.Fatalf("point %d reported twice", i)
				}
				seen[i] = true
				got = append(got, i)
			})
			slices.Sort(got)
			var want []int
			for i, p := range pts {
				for _, q := range group {
					if geom.Dist2(p, q) <= d*d {
						want = append(want, i)
						break
					}
				}
			}
			if !slices.Equal(got, want) {
				t.Fatalf("hint %v dist %v got %d points wanted %d", hint, d, len(got), len(want))
			}
		}
	}
}

func BenchmarkWithinRadius(b *testing.B) {
	rnd := rand.New(rand.NewSource(3))
	pts := randCloud(rnd, 20000, unitBox)
	for _, m := range []Method{Simple, Sliced} {
		g := New(unitBox, 0.5)
		g.Method = m
		g.Insert(pts)
		name := "simple"
		if m == Sliced {
			name = "sliced"
		}
		b.Run(name, func(b *testing.B) {
			n := 0
			for i := 0; i < b.N; i++ {
				g.ForEachWithinRadius(cmmn.Xyz{X: 10, Y: 10, Z: 10}, 6, func(int, bool) { n++ })
			}
		})
	}
}
