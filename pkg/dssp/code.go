// 14 Oct 2026

package dssp

// Code is the one letter secondary structure of a residue, as DSSP
// writes it.
type Code byte

const (
	Loop   Code = ' '
	Strand Code = 'E'
	Bridge Code = 'B'
	Helix3 Code = 'G' // 3-10 helix
	Helix4 Code = 'H' // alpha helix
	Helix5 Code = 'I' // pi helix
	Turn   Code = 'T'
	Bend   Code = 'S'
)

// String gives the letter, but "-" for Loop, which is easier to read.
func (c Code) String() string {
	if c == Loop || c == 0 {
		return "-"
	}
	return string(rune(c))
}

// CanOverwrite says if a residue that already has code existing may be
// given candidate. Strands are never replaced. An alpha helix wins over
// everything else. Turns and bends only go where nothing else is. With
// preferPi, a pi helix may replace an alpha helix.
func CanOverwrite(existing, candidate Code, preferPi bool) bool {
	if existing == Strand {
		return false
	}
	switch candidate {
	case Helix4:
		return true
	case Helix3:
		return existing == Loop || existing == Helix3
	case Helix5:
		return existing == Loop || existing == Helix5 || (preferPi && existing == Helix4)
	case Turn, Bend:
		return existing == Loop
	case Strand, Bridge:
		return true
	}
	return existing == Loop
}
