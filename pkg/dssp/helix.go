package dssp

import (
	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/geom"
)

// Helix flags, one row per stride (3, 4, 5) in the flag matrix.
const (
	flagNone byte = iota
	flagStart
	flagMiddle
	flagEnd
	flagStartEnd
)

const (
	minStride = 3
	maxStride = 5
	bendAngle = 70 // kappa above this is a bend
)

func (c *classifier) isStart(res, stride int) bool {
	f := c.flags.Mat[stride-minStride][res]
	return f == flagStart || f == flagStartEnd
}

// markTurns sets the helix flags for one chain. n is the number of
// protein residues at the start of the chain.
func (c *classifier) markTurns(res []*cmmn.Residue, n int) {
	for stride := minStride; stride <= maxStride; stride++ {
		if len(res) < stride {
			break
		}
		row := c.flags.Mat[stride-minStride]
		for i := 0; i+stride < n; i++ {
			first, last := res[i].Index, res[i+stride].Index
			if !c.hb.IsBond(last, first) || c.hasBreak(first, last) {
				continue
			}
			row[last] = flagEnd
			for j := i + 1; j < i+stride; j++ {
				if k := res[j].Index; row[k] == flagNone {
					row[k] = flagMiddle
				}
			}
			if row[first] == flagEnd {
				row[first] = flagStartEnd
			} else {
				row[first] = flagStart
			}
		}
	}
}

// markBends looks at the C alpha angle over five residues.
func (c *classifier) markBends(res []*cmmn.Residue, n int) {
	for i := 2; i < n-2; i++ {
		prev, ok1 := res[i-2].CAlpha()
		cur, ok2 := res[i].CAlpha()
		next, ok3 := res[i+2].CAlpha()
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		c.bend[res[i].Index] = geom.Kappa(prev, cur, next) > bendAngle
	}
}

// setRun gives residues from..from+len-1 the code, if every one of them
// may take it. Otherwise nothing changes.
func (c *classifier) setRun(res []*cmmn.Residue, from, length int, code Code) {
	for j := from; j < from+length; j++ {
		if !CanOverwrite(c.ss[res[j].Index], code, c.preferPi) {
			return
		}
	}
	for j := from; j < from+length; j++ {
		c.ss[res[j].Index] = code
	}
}

// helices does helices, turns and bends for one chain. Beta structure
// must be done first.
func (c *classifier) helices(res []*cmmn.Residue, n int) {
	c.markTurns(res, n)
	c.markBends(res, n)

	for i := 1; i+4 < n; i++ {
		if c.isStart(res[i].Index, 4) && c.isStart(res[i-1].Index, 4) {
			for j := i; j <= i+3; j++ { // residue by residue, only strands stop it
				if k := res[j].Index; CanOverwrite(c.ss[k], Helix4, c.preferPi) {
					c.ss[k] = Helix4
				}
			}
		}
	}
	for i := 1; i+3 < n; i++ {
		if c.isStart(res[i].Index, 3) && c.isStart(res[i-1].Index, 3) {
			c.setRun(res, i, 3, Helix3)
		}
	}
	for i := 1; i+5 < n; i++ {
		if c.isStart(res[i].Index, 5) && c.isStart(res[i-1].Index, 5) {
			c.setRun(res, i, 5, Helix5)
		}
	}

	for i := 1; i+1 < n; i++ {
		k := res[i].Index
		if c.ss[k] != Loop {
			continue
		}
		isTurn := false
		for stride := minStride; stride <= maxStride && !isTurn; stride++ {
			for back := 1; back < stride && !isTurn; back++ {
				isTurn = i >= back && c.isStart(res[i-back].Index, stride)
			}
		}
		switch {
		case isTurn:
			c.ss[k] = Turn
		case c.bend[k]:
			c.ss[k] = Bend
		}
	}
}
