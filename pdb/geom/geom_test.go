package geom_test

import (
	"math"
	"testing"

	. "github.com/andrew-torda/dssp/pdb/cmmn"
	. "github.com/andrew-torda/dssp/pdb/geom"
)

var disttests = []struct {
	name string
	x1   Xyz
	x2   Xyz
	res  float64
}{
	{"3.8 ", Xyz{X: 3.80, Y: 0.00, Z: 0}, Xyz{X: 0, Y: 0, Z: 0}, 3.8},
	{"onex", Xyz{X: 0.00, Y: 0.00, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, 1},
	{"345 ", Xyz{X: 3.00, Y: 4.00, Z: 0}, Xyz{X: 0, Y: 0, Z: 0}, 5},
	{"zero", Xyz{X: 2.00, Y: 2.00, Z: 2}, Xyz{X: 2, Y: 2, Z: 2}, 0},
	{"122 ", Xyz{X: 1.00, Y: 2.00, Z: 2}, Xyz{X: 0, Y: 0, Z: 0}, 3},
}

// permuteXyz rotates x, y znd z for tests whose answers should not change
// when we move the axes around.
func permuteXyz(x Xyz) Xyz {
	x.X, x.Y, x.Z = x.Y, x.Z, x.X
	return x
}

func TestDist(t *testing.T) {
	for _, test := range disttests {
		x1, x2 := test.x1, test.x2
		for i := 0; i < 3; i++ {
			d1, d2 := Dist(x1, x2), Dist(x2, x1)
			if d1 != d2 {
				t.Errorf("test %s. Not symmetric %f %f", test.name, d1, d2)
			}
			if math.Abs(d1-test.res) > 1e-6 {
				t.Errorf("test %s. got %f wanted %f", test.name, d1, test.res)
			}
			if math.Abs(Dist2(x1, x2)-test.res*test.res) > 1e-5 {
				t.Errorf("test %s. Dist2 got %f", test.name, Dist2(x1, x2))
			}
			x1, x2 = permuteXyz(x1), permuteXyz(x2)
		}
	}
}

func TestVec(t *testing.T) {
	u := Vec{0, 0, -2}
	if n := u.Norm(); n != (Vec{0, 0, -1}) {
		t.Fatalf("Norm got %v", n)
	}
	if n := (Vec{}).Norm(); n != (Vec{}) {
		t.Fatalf("zero Norm got %v", n)
	}
	if s := u.Add(Vec{1, 1, 1}).Sub(Vec{1, 0, 0}); s != (Vec{0, 1, -1}) {
		t.Fatalf("Add / Sub got %v", s)
	}
	if l := (Vec{3, 4, 0}).Len(); l != 5 {
		t.Fatalf("Len got %f", l)
	}
	if c := (Vec{1, 0, 0}).Cross(Vec{0, 1, 0}); c != (Vec{0, 0, 1}) {
		t.Fatalf("Cross got %v", c)
	}
	if x := (Vec{1, 2.5, -3}).Xyz(); x != (Xyz{X: 1, Y: 2.5, Z: -3}) {
		t.Fatalf("Xyz got %v", x)
	}
}

// notApproxEqual returns true if x and y are not approximately equal.
func notApproxEqual(x, y float32) bool {
	diff := x - y
	if diff < 0 {
		diff = -diff
	}
	if math.IsNaN(float64(diff)) {
		return true
	}
	if diff > 0.00001 {
		return true
	}
	return false
}

var dhdrltests = []struct {
	x1, x2, x3, x4 Xyz
	res            float32
}{
	{Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: 1, Z: 0},  0},
	{Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: 1, Z: 1e-5},  0},
	{Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: -1, Z: 0},  math.Pi},
	{Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: 0, Z: 1}, -math.Pi/2},
	{Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: 0, Z: -1},  math.Pi/2},
	{Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: 1, Z: -1},  math.Pi/4},
	{Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: -1, Z: -1},  math.Pi * (3.0/4.0)},
}
// To add
// Move the inner loop into another function and then we can...
//  1. reverse the order of points and repeat
//  2. increase distance between middle points and repeat
//  3. shift all points by a unit along an axis and repeat
func TestXyzDhdrl(t *testing.T) {
	for _, test := range dhdrltests {
		x1, x2, x3, x4 := test.x1, test.x2, test.x3, test.x4
		const emsg = "error with %v %v %v %v wanted: %.3g got: %.3g"
		for i := 0; i < 3; i++ {
			a := XyzDhdrl(x1, x2, x3, x4)
			if notApproxEqual(a, test.res) {
				t.Errorf(emsg, x1, x2, x3, x4, test.res, a)
			}
			x1, x2, x3, x4 = permuteXyz(x1), permuteXyz(x2), permuteXyz(x3), permuteXyz(x4)
		}
	}
}

func TestDhdrlDeg(t *testing.T) {
	a := DhdrlDeg(Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: 0, Z: -1})
	if math.Abs(a-90) > 1e-4 {
		t.Errorf("DhdrlDeg got %f wanted 90", a)
	}
	if a := DhdrlDeg(BrokenXyz, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 3, Y: 0, Z: 1}); a != NoAngle {
		t.Errorf("broken point should give NoAngle, got %f", a)
	}
	if a := DhdrlDeg(Xyz{X: 0, Y: 1, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 3, Y: 0, Z: 1}); a != NoAngle {
		t.Errorf("coincident middle points should give NoAngle, got %f", a)
	}
}

var kappatests = []struct {
	name        string
	p2, cur, n2 Xyz
	res         float64
}{
	{"straight", Xyz{X: 0, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 4, Y: 0, Z: 0}, 0},
	{"right   ", Xyz{X: 0, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 2, Y: 2, Z: 0}, 90},
	{"back    ", Xyz{X: 0, Y: 0, Z: 0}, Xyz{X: 2, Y: 0, Z: 0}, Xyz{X: 0, Y: 0.0, Z: 0}, 180},
	{"45      ", Xyz{X: 0, Y: 0, Z: 0}, Xyz{X: 1, Y: 0, Z: 0}, Xyz{X: 2, Y: 1, Z: 0}, 45},
	{"same    ", Xyz{X: 1, Y: 1, Z: 1}, Xyz{X: 1, Y: 1, Z: 1}, Xyz{X: 2, Y: 0, Z: 0}, 90},
}

func TestKappa(t *testing.T) {
	for _, test := range kappatests {
		p2, cur, n2 := test.p2, test.cur, test.n2
		for i := 0; i < 3; i++ {
			if k := Kappa(p2, cur, n2); math.Abs(k-test.res) > 1e-4 {
				t.Errorf("kappa %s got %f wanted %f", test.name, k, test.res)
			}
			p2, cur, n2 = permuteXyz(p2), permuteXyz(cur), permuteXyz(n2)
		}
	}
}
