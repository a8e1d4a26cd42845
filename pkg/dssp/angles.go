package dssp

import (
	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/geom"
)

// BackboneAngles in degrees. Anything that cannot be calculated, for
// example at a chain end or break, is geom.NoAngle.
type BackboneAngles struct {
	Kappa float64 // C alpha bend over i-2, i, i+2
	Alpha float64 // C alpha dihedral over i-1 .. i+2
	Phi   float64
	Psi   float64
}

// Angles calculates the backbone angles of every residue.
func Angles(cx *cmmn.Complex) []BackboneAngles {
	res := cx.Residues
	ret := make([]BackboneAngles, len(res))
	// around returns residue i+d if it is in the same unbroken piece of chain
	around := func(i, d int) *cmmn.Residue {
		j := i + d
		if j < 0 || j >= len(res) || chainBreak(res, min(i, j), max(i, j)) {
			return nil
		}
		return res[j]
	}
	ca := func(r *cmmn.Residue) cmmn.Xyz {
		if r == nil {
			return cmmn.BrokenXyz
		}
		x, _ := r.CAlpha()
		return x
	}
	atom := func(r *cmmn.Residue, name string) cmmn.Xyz {
		if r == nil {
			return cmmn.BrokenXyz
		}
		x, _ := r.Atom(name)
		return x
	}
	for i, r := range res {
		a := &ret[i]
		a.Kappa = geom.NoAngle
		if p2, cur, n2 := ca(around(i, -2)), ca(r), ca(around(i, 2)); p2.Ok() && cur.Ok() && n2.Ok() {
			a.Kappa = geom.Kappa(p2, cur, n2)
		}
		a.Alpha = geom.DhdrlDeg(ca(around(i, -1)), ca(r), ca(around(i, 1)), ca(around(i, 2)))
		n, cAlpha, cc := atom(r, "N"), atom(r, "CA"), atom(r, "C")
		a.Phi = geom.DhdrlDeg(atom(around(i, -1), "C"), n, cAlpha, cc)
		a.Psi = geom.DhdrlDeg(n, cAlpha, cc, atom(around(i, 1), "N"))
	}
	return ret
}
