package dssp

import (
	"cmp"
	"slices"

	"github.com/andrew-torda/dssp/pdb/cmmn"
)

const (
	minBetaChain = 5 // shorter chains are not searched for bridges
	selfGap      = 3 // j starts this far after i within one chain
	maxLadderGap = 6 // on the i side, for merging ladders over a bulge
	bulgeSmall   = 3
	bulgeBig     = 6
)

// Ladder is a run of bridges of one type. I is ascending. For parallel
// ladders J runs the same way as I, for antiparallel ones J is also
// ascending, so I[k] faces J[len(J)-1-k].
type Ladder struct {
	ID       int
	Sheet    int
	Parallel bool
	ChainI   int
	ChainJ   int
	I, J     []int
}

// bond is a short name, since the bridge tests need eight of them.
func (c *classifier) bond(from, to int) bool { return c.hb.IsBond(from, to) }

// testBridge looks for a bridge between residue i of chain a and residue
// j of chain b. ok is false if there is none.
func (c *classifier) testBridge(a []*cmmn.Residue, i int, b []*cmmn.Residue, j int) (parallel, ok bool) {
	ra, rb, rc := a[i-1].Index, a[i].Index, a[i+1].Index
	rd, re, rf := b[j-1].Index, b[j].Index, b[j+1].Index
	switch {
	case (c.bond(rc, re) && c.bond(re, ra)) || (c.bond(rf, rb) && c.bond(rb, rd)):
		return true, true
	case (c.bond(rc, rd) && c.bond(rf, ra)) || (c.bond(re, rb) && c.bond(rb, re)):
		return false, true
	}
	return false, false
}

// extend tries to add the bridge ri, rj to the end of an existing ladder.
func (c *classifier) extend(ladders []*Ladder, parallel bool, ri, rj int) bool {
	for _, l := range ladders {
		lastI := l.I[len(l.I)-1]
		if l.Parallel != parallel || ri != lastI+1 || c.hasBreak(lastI, ri) {
			continue
		}
		if lastJ := l.J[len(l.J)-1]; parallel && lastJ+1 == rj && !c.hasBreak(lastJ, rj) {
			l.I = append(l.I, ri)
			l.J = append(l.J, rj)
			return true
		}
		if firstJ := l.J[0]; !parallel && firstJ-1 == rj && !c.hasBreak(rj, firstJ) {
			l.I = append(l.I, ri)
			l.J = slices.Insert(l.J, 0, rj)
			return true
		}
	}
	return false
}

// findBridges compares every chain with every chain, itself included.
func (c *classifier) findBridges() []*Ladder {
	var ladders []*Ladder
	chains := c.cx.Chains
	for ia, ca := range chains {
		lenA := c.chainLen[ia]
		if lenA < minBetaChain {
			continue
		}
		for ib := ia; ib < len(chains); ib++ {
			cb := chains[ib]
			lenB := c.chainLen[ib]
			if lenB < minBetaChain {
				continue
			}
			for i := 1; i+1 < lenA; i++ {
				j := 1
				if ib == ia {
					j = i + selfGap
				}
				for ; j+1 < lenB; j++ {
					parallel, ok := c.testBridge(ca.Residues, i, cb.Residues, j)
					if !ok {
						continue
					}
					ri, rj := ca.Residues[i].Index, cb.Residues[j].Index
					if c.extend(ladders, parallel, ri, rj) {
						continue
					}
					ladders = append(ladders, &Ladder{
						Parallel: parallel,
						ChainI:   ca.Index,
						ChainJ:   cb.Index,
						I:        []int{ri},
						J:        []int{rj},
					})
				}
			}
		}
	}
	return ladders
}

// mergeLadders joins ladders of the same type that are separated by a
// small bulge. ladders must be sorted.
func (c *classifier) mergeLadders(ladders []*Ladder) []*Ladder {
	for i := 0; i < len(ladders); i++ {
		for j := i + 1; j < len(ladders); j++ {
			li, lj := ladders[i], ladders[j]
			ibi, iei := li.I[0], li.I[len(li.I)-1]
			jbi, jei := li.J[0], li.J[len(li.J)-1]
			ibj, iej := lj.I[0], lj.I[len(lj.I)-1]
			jbj, jej := lj.J[0], lj.J[len(lj.J)-1]
			if li.Parallel != lj.Parallel ||
				c.hasBreak(min(ibi, ibj), max(iei, iej)) ||
				c.hasBreak(min(jbi, jbj), max(jei, jej)) ||
				ibj-iei >= maxLadderGap || (iei >= ibj && ibi <= iej) {
				continue
			}
			var bulge bool
			if li.Parallel {
				bulge = (jbj-jei < bulgeBig && ibj-iei < bulgeSmall) || jbj-jei < bulgeSmall
			} else {
				bulge = (jbi-jej < bulgeBig && ibj-iei < bulgeSmall) || jbi-jej < bulgeSmall
			}
			if !bulge {
				continue
			}
			li.I = slices.Concat(li.I, lj.I)
			if li.Parallel {
				li.J = slices.Concat(li.J, lj.J)
			} else {
				li.J = slices.Concat(lj.J, li.J)
			}
			ladders = slices.Delete(ladders, j, j+1)
			j--
		}
	}
	return ladders
}

// linked says if two ladders share a residue.
func linked(a, b *Ladder) bool {
	for _, r := range slices.Concat(b.I, b.J) {
		if slices.Contains(a.I, r) || slices.Contains(a.J, r) {
			return true
		}
	}
	return false
}

// closeSheets groups ladders into sheets. Each sheet starts from the
// first ladder left over and keeps pulling in ladders linked to it
// until nothing changes. Sheets are numbered from 1 and ladders from 0,
// in the order they join their sheet.
func closeSheets(ladders []*Ladder) [][]*Ladder {
	var sheets [][]*Ladder
	left := slices.Clone(ladders)
	id := 0
	for len(left) > 0 {
		sheet := []*Ladder{left[0]}
		left = left[1:]
		for {
			var toMove []*Ladder
			for _, a := range sheet {
				for _, b := range left {
					if linked(a, b) && !slices.Contains(toMove, b) {
						toMove = append(toMove, b)
					}
				}
			}
			if len(toMove) == 0 {
				break
			}
			sheet = append(sheet, toMove...)
			left = slices.DeleteFunc(left, func(l *Ladder) bool { return slices.Contains(toMove, l) })
		}
		for _, l := range sheet {
			l.ID = id
			l.Sheet = len(sheets) + 1
			id++
		}
		sheets = append(sheets, sheet)
	}
	return sheets
}

// setPartners fills in the beta partners. If any residue on one side of
// the ladder already has a partner, that side uses the second slot.
func (c *classifier) setPartners(l *Ladder) {
	slot := func(side []int) int {
		for _, r := range side {
			if c.partner[r][0].Ok() {
				return 1
			}
		}
		return 0
	}
	si, sj := slot(l.I), slot(l.J)
	for k, r := range l.I {
		m := k
		if !l.Parallel {
			m = len(l.J) - 1 - k
		}
		if m >= 0 && m < len(l.J) {
			c.partner[r][si] = BetaPartner{Residue: l.J[m], Ladder: l.ID, Parallel: l.Parallel}
		}
	}
	for k, r := range l.J {
		m := k
		if !l.Parallel {
			m = len(l.I) - 1 - k
		}
		if m >= 0 && m < len(l.I) {
			c.partner[r][sj] = BetaPartner{Residue: l.I[m], Ladder: l.ID, Parallel: l.Parallel}
		}
	}
}

func (c *classifier) setStrand(side []int, code Code, sheet int) {
	for k := side[0]; k <= side[len(side)-1]; k++ {
		if CanOverwrite(c.ss[k], code, c.preferPi) {
			c.ss[k] = code
			c.sheet[k] = sheet
		}
	}
}

// buildBeta finds bridges, joins them into ladders and sheets and sets
// the codes. It runs before helices.
func (c *classifier) buildBeta() []*Ladder { return c.assignBeta(c.findBridges()) }

// assignBeta sorts and merges ladders, groups them into sheets and sets
// partners and codes.
func (c *classifier) assignBeta(ladders []*Ladder) []*Ladder {
	slices.SortStableFunc(ladders, func(a, b *Ladder) int {
		return cmp.Or(cmp.Compare(a.ChainI, b.ChainI), cmp.Compare(a.I[0], b.I[0]))
	})
	ladders = c.mergeLadders(ladders)
	closeSheets(ladders)
	for _, l := range ladders {
		c.setPartners(l)
		code := Bridge
		if len(l.I) > 1 {
			code = Strand
		}
		c.setStrand(l.I, code, l.Sheet)
		c.setStrand(l.J, code, l.Sheet)
	}
	return ladders
}
