// Calculate some geometries, lengths and angles

package geom

import (
	"math"

	"github.com/andrew-torda/dssp/pdb/cmmn"
)

const (
	conv    = 180 / math.Pi
	NoAngle = 360 // returned in degrees when an angle cannot be defined
)

// Vec is a double precision vector. Coordinates are stored as float32,
// but energies and angles are calculated in float64.
type Vec struct{ X, Y, Z float64 }

// V converts coordinates to a Vec.
func V(x cmmn.Xyz) Vec { return Vec{float64(x.X), float64(x.Y), float64(x.Z)} }

func (u Vec) Sub(v Vec) Vec       { return Vec{u.X - v.X, u.Y - v.Y, u.Z - v.Z} }
func (u Vec) Add(v Vec) Vec       { return Vec{u.X + v.X, u.Y + v.Y, u.Z + v.Z} }
func (u Vec) Scale(s float64) Vec { return Vec{s * u.X, s * u.Y, s * u.Z} }
func (u Vec) Dot(v Vec) float64   { return u.X*v.X + u.Y*v.Y + u.Z*v.Z }
func (u Vec) Len() float64        { return math.Sqrt(u.Dot(u)) }

func (u Vec) Cross(v Vec) Vec {
	return Vec{u.Y*v.Z - u.Z*v.Y, u.Z*v.X - u.X*v.Z, u.X*v.Y - u.Y*v.X}
}

// Xyz converts back to single precision coordinates.
func (u Vec) Xyz() cmmn.Xyz { return cmmn.Xyz{X: float32(u.X), Y: float32(u.Y), Z: float32(u.Z)} }

// Norm returns u scaled to unit length. A zero vector stays zero.
func (u Vec) Norm() Vec {
	l := u.Len()
	if l == 0 {
		return u
	}
	return u.Scale(1 / l)
}

// Dist2 is the squared distance between two points.
func Dist2(a, b cmmn.Xyz) float64 {
	d := V(a).Sub(V(b))
	return d.Dot(d)
}

// Dist is the distance between two points.
func Dist(a, b cmmn.Xyz) float64 { return math.Sqrt(Dist2(a, b)) }

//xyzDiff gets the difference of two vectors
func xyzDiff(start, end cmmn.Xyz) (diff cmmn.Xyz) {
	diff.X = end.X - start.X
	diff.Y = end.Y - start.Y
	diff.Z = end.Z - start.Z
	return diff
}

// vecProd returns the vector product of two vectors
func vecProd(u, v cmmn.Xyz) (res cmmn.Xyz) {
	res.X = u.Y*v.Z - u.Z*v.Y
	res.Y = u.Z*v.X - u.X*v.Z
	res.Z = u.X*v.Y - u.Y*v.X
	return res
}

// xyz dotprod returns the dot / scalar product of two vectors
func sclrProd(u, v cmmn.Xyz) float32 { return (u.X*v.X + u.Y*v.Y + u.Z*v.Z) }

// xyzLen2 gives us the length squared
func xyzLen2(v cmmn.Xyz) float32 { return (v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// xyzLen returns the vector length
func xyzLen(v cmmn.Xyz) float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// XyzDhdrl takes four points and returns the dihedral angle in radians
func XyzDhdrl(ii, jj, kk, ll cmmn.Xyz) float32 {
	r_ij := xyzDiff(ii, jj)
	r_kj := xyzDiff(kk, jj)
	r_kl := xyzDiff(kk, ll)
	var r_im, r_ln cmmn.Xyz
	{
		tmp := sclrProd(r_ij, r_kj)
		tmp = tmp / xyzLen2(r_kj)
		tmp_vec := cmmn.Xyz{X: tmp * r_kj.X, Y: tmp * r_kj.Y, Z: tmp * r_kj.Z}
		r_im = xyzDiff(r_ij, tmp_vec)
	}
	{
		tmp := sclrProd(r_kl, r_kj)
		tmp = tmp / xyzLen2(r_kj)
		tmp_vec := cmmn.Xyz{X: tmp * r_kj.X, Y: tmp * r_kj.Y, Z: tmp * r_kj.Z}
		r_ln = xyzDiff(tmp_vec, r_kl)
	}
	var tau float32
	{
		t_cos := float64(sclrProd(r_im, r_ln) / (xyzLen(r_im) * xyzLen(r_ln)))
		if t_cos > 1 { // Numerical errors can catch us. If so, no need
			return 0.0 // to call acos()
		}
		if t_cos < -1 {
			return math.Pi
		}
		tau = float32(math.Acos(t_cos))
	}

	if sclrProd(r_ij, vecProd(r_kj, r_kl)) >= 0 {
		return (tau)
	}
	return (-tau)
}

// DhdrlDeg is XyzDhdrl in degrees, or NoAngle if any point is broken
// or the middle two points sit on top of each other.
func DhdrlDeg(ii, jj, kk, ll cmmn.Xyz) float64 {
	if !ii.Ok() || !jj.Ok() || !kk.Ok() || !ll.Ok() || jj == kk {
		return NoAngle
	}
	a := XyzDhdrl(ii, jj, kk, ll)
	if math.IsNaN(float64(a)) {
		return NoAngle
	}
	return float64(a) * conv
}

// Kappa is the virtual bond angle at cur, between the directions
// prev2->cur and cur->next2, in degrees. A straight chain gives 0.
// Coincident points give a cosine of zero, so 90 degrees.
func Kappa(prev2, cur, next2 cmmn.Xyz) float64 {
	v12 := V(cur).Sub(V(prev2))
	v34 := V(next2).Sub(V(cur))
	var ckap float64
	if x := v12.Dot(v12) * v34.Dot(v34); x > 0 {
		ckap = v12.Dot(v34) / math.Sqrt(x)
	}
	skap := math.Sqrt(max(1-ckap*ckap, 0))
	return math.Atan2(skap, ckap) * conv
}
