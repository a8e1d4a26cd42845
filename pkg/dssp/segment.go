package dssp

import (
	"github.com/andrew-torda/dssp/pdb/cmmn"
)

// Helix classes as in PDB HELIX records.
const (
	ClassAlpha = 1
	ClassPi    = 3
	Class310   = 5
)

// Segment is a run of residues in one chain with the same code and
// sheet. Start and End are residue indices, both included. Helices are
// numbered from 1 in the order they appear, other segments have Helix 0.
type Segment struct {
	Code       Code
	Sheet      int
	Chain      int
	Start, End int
	Helix      int
	HelixClass int
}

func (s Segment) Len() int { return s.End - s.Start + 1 }

func helixClass(c Code) int {
	switch c {
	case Helix4:
		return ClassAlpha
	case Helix5:
		return ClassPi
	case Helix3:
		return Class310
	}
	return 0
}

// Segments cuts the residues into runs. Loops are included, so every
// residue is in exactly one segment.
func Segments(cx *cmmn.Complex, ss *SSMap) []Segment {
	var segs []Segment
	nHelix := 0
	for i, r := range cx.Residues {
		rs := ss.Res[i]
		if n := len(segs); n > 0 {
			last := &segs[n-1]
			if last.Code == rs.Code && last.Sheet == rs.Sheet && last.Chain == r.Chain.Index {
				last.End = i
				continue
			}
		}
		seg := Segment{Code: rs.Code, Sheet: rs.Sheet, Chain: r.Chain.Index, Start: i, End: i}
		if seg.HelixClass = helixClass(rs.Code); seg.HelixClass != 0 {
			nHelix++
			seg.Helix = nHelix
		}
		segs = append(segs, seg)
	}
	return segs
}

// Sheets collects the strand segments of each sheet.
func Sheets(segs []Segment) map[int][]Segment {
	sheets := make(map[int][]Segment)
	for _, s := range segs {
		if s.Code == Strand {
			sheets[s.Sheet] = append(sheets[s.Sheet], s)
		}
	}
	return sheets
}
