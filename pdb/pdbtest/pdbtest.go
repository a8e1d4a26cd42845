// Package pdbtest builds small synthetic structures for tests. Only
// backbone atoms N, CA, C and O are made.
package pdbtest

import (
	"bufio"
	"io"
	"math"
	"math/rand"
	"strconv"

	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/geom"
)

// Ideal bond lengths and angles, angstrom and degrees.
const (
	bondNCA  = 1.458
	bondCAC  = 1.525
	bondCN   = 1.329
	bondCO   = 1.231
	angNCAC  = 111.0
	angCACN  = 116.2
	angCNCA  = 121.7
	angCACO  = 120.5
	omega    = 180.0
	HelixPhi = -57.0
	HelixPsi = -47.0
)

const deg = math.Pi / 180

// place puts atom d given a, b, c, the length c-d, the angle b-c-d and
// the dihedral a-b-c-d.
func place(a, b, c geom.Vec, length, angle, tors float64) geom.Vec {
	bc := c.Sub(b).Norm()
	n := b.Sub(a).Cross(bc).Norm()
	m := n.Cross(bc)
	ang, tor := angle*deg, tors*deg
	d2 := geom.Vec{
		X: -length * math.Cos(ang),
		Y: length * math.Sin(ang) * math.Cos(tor),
		Z: length * math.Sin(ang) * math.Sin(tor),
	}
	return c.Add(bc.Scale(d2.X)).Add(m.Scale(d2.Y)).Add(n.Scale(d2.Z))
}

// addRes appends residue with the four backbone atoms.
func addRes(cx *cmmn.Complex, c *cmmn.Chain, name string, seq int, n, ca, cc, o geom.Vec) *cmmn.Residue {
	r := cx.AddResidue(c, name, seq, ' ')
	cx.AddAtom(r, "N", "N", n.Xyz())
	cx.AddAtom(r, "CA", "C", ca.Xyz())
	cx.AddAtom(r, "C", "C", cc.Xyz())
	cx.AddAtom(r, "O", "O", o.Xyz())
	return r
}

// Backbone adds a chain of n alanines with the same phi and psi at
// every residue, numbered from 1.
func Backbone(cx *cmmn.Complex, id string, n int, phi, psi float64) *cmmn.Chain {
	c := cx.AddChain(id)
	if n < 1 {
		return c
	}
	nAt := geom.Vec{}
	ca := geom.Vec{X: bondNCA}
	cc := ca.Add(geom.Vec{X: math.Cos((180 - angNCAC) * deg), Y: math.Sin((180 - angNCAC) * deg)}.Scale(bondCAC))
	for k := 0; k < n; k++ {
		o := place(nAt, ca, cc, bondCO, angCACO, psi+180)
		addRes(cx, c, "ALA", k+1, nAt, ca, cc, o)
		nNext := place(nAt, ca, cc, bondCN, angCACN, psi)
		caNext := place(ca, cc, nNext, bondNCA, angCNCA, omega)
		cNext := place(cc, nNext, caNext, bondCAC, angNCAC, phi)
		nAt, ca, cc = nNext, caNext, cNext
	}
	return c
}

// Helix adds an ideal alpha helix of n residues.
func Helix(cx *cmmn.Complex, id string, n int) *cmmn.Chain {
	return Backbone(cx, id, n, HelixPhi, HelixPsi)
}

const (
	strandRise = 3.4 // along x, per residue
	strandGap  = 4.2 // between the two strand axes
	halfBond   = 1.0 // N and C sit this far either side of CA
)

// StrandPair adds chains A and B, each with n residues, lying flat as an
// antiparallel pair along x. Residue k of A faces residue n-1-k of B.
// Even residues of A point their NH and CO across to B, so they and
// their partners are mutually hydrogen bonded. Odd residues point away.
func StrandPair(cx *cmmn.Complex, n int) (a, b *cmmn.Chain) {
	a = cx.AddChain("A")
	for k := 0; k < n; k++ {
		x := strandRise * float64(k)
		s := 1.0
		if k%2 != 0 {
			s = -1
		}
		addRes(cx, a, "ALA", k+1,
			geom.Vec{X: x - halfBond},
			geom.Vec{X: x},
			geom.Vec{X: x + halfBond},
			geom.Vec{X: x + halfBond, Y: s * bondCO})
	}
	b = cx.AddChain("B")
	for m := 0; m < n; m++ {
		k := n - 1 - m // partner in A
		x := strandRise * float64(k)
		s := 1.0 // facing A means pointing to -y
		if k%2 == 0 {
			s = -1
		}
		addRes(cx, b, "ALA", m+1,
			geom.Vec{X: x + halfBond, Y: strandGap},
			geom.Vec{X: x, Y: strandGap},
			geom.Vec{X: x - halfBond, Y: strandGap},
			geom.Vec{X: x - halfBond, Y: strandGap + s*bondCO})
	}
	return a, b
}

// flatRes adds a residue lying along +x at height y, with its CO
// pointing to side s, +1 or -1 in y.
func flatRes(cx *cmmn.Complex, c *cmmn.Chain, seq int, x, y, s float64) {
	addRes(cx, c, "ALA", seq,
		geom.Vec{X: x - halfBond, Y: y},
		geom.Vec{X: x, Y: y},
		geom.Vec{X: x + halfBond, Y: y},
		geom.Vec{X: x + halfBond, Y: y + s*bondCO})
}

// ParallelPair adds chains A and B, each with n residues, lying flat
// along x and running the same way. Residue k of A sits beside residue
// k of B. Odd residues of A and even residues of B point NH and CO
// across, so NH of A k binds CO of B k-1 and NH of B k binds CO of A
// k-1. Every residue but the ends is then in one parallel bridge.
func ParallelPair(cx *cmmn.Complex, n int) (a, b *cmmn.Chain) {
	a = cx.AddChain("A")
	for k := 0; k < n; k++ {
		s := -1.0
		if k%2 != 0 {
			s = 1
		}
		flatRes(cx, a, k+1, strandRise*float64(k), 0, s)
	}
	b = cx.AddChain("B")
	for k := 0; k < n; k++ {
		s := 1.0
		if k%2 == 0 {
			s = -1
		}
		flatRes(cx, b, k+1, strandRise*float64(k), strandGap, s)
	}
	return a, b
}

// CATrace adds a chain of alanines with only a C alpha at each point.
// Good enough for bends, when hydrogen bonds are not calculated.
func CATrace(cx *cmmn.Complex, id string, pts []cmmn.Xyz) *cmmn.Chain {
	c := cx.AddChain(id)
	for k, p := range pts {
		r := cx.AddResidue(c, "ALA", k+1, ' ')
		cx.AddAtom(r, "CA", "C", p)
	}
	return c
}

// Shift moves every atom of chain c by d.
func Shift(c *cmmn.Chain, d cmmn.Xyz) {
	for _, r := range c.Residues {
		for _, at := range r.Atoms {
			at.Xyz.X += d.X
			at.Xyz.Y += d.Y
			at.Xyz.Z += d.Z
		}
	}
}

// Jitter moves every atom of the complex by up to amp in each direction.
func Jitter(cx *cmmn.Complex, rnd *rand.Rand, amp float32) {
	for _, at := range cx.Atoms {
		at.Xyz.X += amp * (2*rnd.Float32() - 1)
		at.Xyz.Y += amp * (2*rnd.Float32() - 1)
		at.Xyz.Z += amp * (2*rnd.Float32() - 1)
	}
}

// Renumber adds gap to the sequence number of residues from..end of c,
// which makes a chain break before residue from.
func Renumber(c *cmmn.Chain, from, gap int) {
	for _, r := range c.Residues[from:] {
		r.SeqNum += gap
	}
}

func num(x float32) string { return strconv.FormatFloat(float64(x), 'f', -1, 32) }

// WriteCif writes the atoms of cx as a minimal mmcif atom_site loop.
// Coordinates are written so they read back exactly.
func WriteCif(w io.Writer, cx *cmmn.Complex) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("data_TEST\n#\nloop_\n")
	for _, h := range []string{"group_PDB", "id", "type_symbol", "label_atom_id",
		"label_comp_id", "auth_asym_id", "auth_seq_id", "Cartn_x", "Cartn_y", "Cartn_z"} {
		bw.WriteString("_atom_site." + h + "\n")
	}
	for i, at := range cx.Atoms {
		r := at.Res
		el := at.Element
		if el == "" {
			el = "?"
		}
		bw.WriteString("ATOM " + strconv.Itoa(i+1) + " " + el + " " + at.Name + " " +
			r.Name + " " + r.Chain.ChainID + " " + strconv.Itoa(r.SeqNum) + " " +
			num(at.Xyz.X) + " " + num(at.Xyz.Y) + " " + num(at.Xyz.Z) + "\n")
	}
	bw.WriteString("#\n")
	return bw.Flush()
}
