package cmmn_test

import (
	"testing"

	. "github.com/andrew-torda/dssp/pdb/cmmn"
)

func TestXyzOk(t *testing.T) {
	var xyz Xyz
	xyz = BrokenXyz
	if xyz.Ok() {
		t.Error("cannot even check if a value is OK")
	}
	xyz = Xyz{1, 1, 1}
	if !xyz.Ok() {
		t.Error("OK should be true")
	}
}

func TestBoxOf(t *testing.T) {
	pts := XyzSl{{1, 2, 3}, BrokenXyz, {-1, 5, 0}, {0, 0, 9}}
	b := BoxOf(pts)
	if b.Min != (Xyz{-1, 0, 0}) || b.Max != (Xyz{1, 5, 9}) {
		t.Fatalf("BoxOf got %v", b)
	}
	if s := b.Size(); s != (Xyz{2, 5, 9}) {
		t.Fatalf("Size got %v", s)
	}
	if !b.Contains(Xyz{1, 5, 9}) || b.Contains(Xyz{1.5, 0, 0}) {
		t.Fatal("Contains broken")
	}
	g := b.Grow(1)
	if g.Min != (Xyz{-2, -1, -1}) || g.Max != (Xyz{2, 6, 10}) {
		t.Fatalf("Grow got %v", g)
	}
	if e := BoxOf(nil); e != (Box{}) {
		t.Fatalf("empty box got %v", e)
	}
}

func TestComplexBuild(t *testing.T) {
	var cx Complex
	a := cx.AddChain("A")
	r0 := cx.AddResidue(a, "ALA", 1, ' ')
	cx.AddAtom(r0, "N", "N", Xyz{0, 0, 0})
	cx.AddAtom(r0, "CA", "C", Xyz{1, 0, 0})
	b := cx.AddChain("B")
	r1 := cx.AddResidue(b, "DG", 7, ' ')
	cx.AddAtom(r1, "C1", "C", Xyz{4, 4, 4})
	cx.AddResidue(b, "HOH", 8, ' ')

	if cx.NRes() != 3 || cx.NAtom() != 3 {
		t.Fatalf("got %d residues %d atoms", cx.NRes(), cx.NAtom())
	}
	for i, r := range cx.Residues {
		if r.Index != i {
			t.Fatalf("residue %d has index %d", i, r.Index)
		}
	}
	if !r0.IsProtein() || r1.IsProtein() || r1.Flags != ResNucleic {
		t.Fatal("residue flags wrong")
	}
	if cx.Residues[2].Flags != 0 {
		t.Fatal("water should have no flags")
	}
	if ca, ok := r0.CAlpha(); !ok || ca != (Xyz{1, 0, 0}) {
		t.Fatal("CA not found")
	}
	if c1, ok := r1.CAlpha(); !ok || c1 != (Xyz{4, 4, 4}) {
		t.Fatal("C1 not found as CAlpha")
	}
	if _, ok := r0.Atom("O"); ok {
		t.Fatal("found an atom that is not there")
	}
	if names := cx.ChainNames(); len(names) != 2 || names[1] != "B" {
		t.Fatalf("chain names %v", names)
	}
	if box := cx.Box(); box.Max != (Xyz{4, 4, 4}) {
		t.Fatalf("box %v", box)
	}
}

func TestAddResidueWrongChain(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic adding to an old chain")
		}
	}()
	var cx Complex
	a := cx.AddChain("A")
	cx.AddChain("B")
	cx.AddResidue(a, "GLY", 1, ' ')
}
