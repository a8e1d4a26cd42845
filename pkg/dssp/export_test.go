package dssp

import (
	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pkg/hbond"
)

var CloseSheets = closeSheets

// HelicesOver runs the helix, turn and bend passes over codes that are
// already set.
func HelicesOver(cx *cmmn.Complex, hb *hbond.Model, preset []Code) []Code {
	c := newClassifier(cx, hb, false)
	copy(c.ss, preset)
	for k, ch := range cx.Chains {
		c.helices(ch.Residues, c.chainLen[k])
	}
	return c.ss
}

// BondSet is a hand made set of hydrogen bonds, keyed by donor then
// acceptor residue.
type BondSet map[[2]int]bool

func (b BondSet) IsBond(from, to int) bool { return b[[2]int{from, to}] }

// ClassifyBonds classifies with the given bonds instead of calculating
// them.
func ClassifyBonds(cx *cmmn.Complex, bonds BondSet, preferPi bool) *SSMap {
	c := newClassifier(cx, bonds, preferPi)
	return c.result(c.run())
}

// AssignBeta takes ladders as if the bridge search had found them.
func AssignBeta(cx *cmmn.Complex, ladders []*Ladder) *SSMap {
	c := newClassifier(cx, BondSet{}, false)
	return c.result(c.assignBeta(ladders))
}
