// 13 Oct 2026

// Package hbond finds backbone hydrogen bonds between protein residues
// using the Kabsch and Sander electrostatic energy. For every residue
// we keep the two strongest partners as donor and as acceptor.
//
// Small structures are done with a loop over all residue pairs. Big ones
// put the atoms in a grid and only look at residues whose atoms come
// within MaxCouplingDist of a C alpha. Both ways look at the same pairs
// in the same order, so they give the same answer.
package hbond

import (
	"fmt"
	"math"
	"slices"

	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/geom"
	"github.com/andrew-torda/dssp/pkg/grid"
	"github.com/andrew-torda/dssp/pkg/pairs"
)

const (
	CouplingConst   = -27.888 // -332 * 0.42 * 0.2
	MinEnergy       = -9.9    // floor, also used when atoms are too close
	MaxBondEnergy   = -0.5    // must be below this to count as a bond
	MinDist         = 0.5
	MaxCouplingDist = 5.0 // atom of partner to C alpha
	GridThreshold   = 1000
	CellHint        = 5.0
	pairsPerRes     = 16 // guess for sizing the pair table
)

// Strategy says how candidate pairs are found.
type Strategy uint8

const (
	Auto   Strategy = iota // Grid above the threshold, else Direct
	Direct                 // all pairs of residues
	Grid                   // spatial grid and a pair table
)

func (s Strategy) String() string {
	switch s {
	case Auto:
		return "auto"
	case Direct:
		return "direct"
	case Grid:
		return "grid"
	}
	return fmt.Sprintf("Strategy(%d)", s)
}

// ParseStrategy is for command line flags.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range []Strategy{Auto, Direct, Grid} {
		if s == st.String() {
			return st, nil
		}
	}
	return Auto, fmt.Errorf("unknown strategy %q, want auto, direct or grid", s)
}

// Options for Build. The zero value is usable.
type Options struct {
	Strategy  Strategy
	Threshold int // residue count above which Auto uses the grid, 0 means GridThreshold
	TableSize int // buckets in the pair table, 0 means guess from residue count
}

// Partner is the other residue in a hydrogen bond.
type Partner struct {
	Residue int
	Energy  float64
}

// Record has the two best partners of a residue when it is the donor
// (Acc, the residues whose oxygen it binds) and when it is the acceptor
// (Don). Slot 0 is the stronger, that is, more negative.
type Record struct {
	Acc  [2]Partner
	Don  [2]Partner
	NAcc int
	NDon int
}

// add puts a partner into a top two list. Ties keep the older entry.
func add(lst *[2]Partner, n *int, p Partner) {
	switch {
	case *n < 2:
		lst[*n] = p
		*n++
		if *n == 2 && p.Energy < lst[0].Energy {
			lst[0], lst[1] = lst[1], lst[0]
		}
	case p.Energy < lst[0].Energy:
		lst[1] = lst[0]
		lst[0] = p
	case p.Energy < lst[1].Energy:
		lst[1] = p
	}
}

// Model holds a record for every residue of a complex.
type Model struct {
	recs     []Record
	strategy Strategy
}

// Record returns the record for residue i. The bool is false if the
// residue never took part in an energy calculation.
func (m *Model) Record(i int) (Record, bool) {
	r := m.recs[i]
	return r, r.NAcc+r.NDon > 0
}

// IsBond says if residue from donates a hydrogen bond to residue to,
// strong enough to count.
func (m *Model) IsBond(from, to int) bool {
	r := &m.recs[from]
	for k := 0; k < r.NAcc; k++ {
		if r.Acc[k].Residue == to && r.Acc[k].Energy < MaxBondEnergy {
			return true
		}
	}
	return false
}

// Strategy is the one actually used, never Auto.
func (m *Model) Strategy() Strategy { return m.strategy }

// NRes is the number of residues covered.
func (m *Model) NRes() int { return len(m.recs) }

// Energy is the Kabsch Sander energy for the amide n, h of the donor and
// the carbonyl c, o of the acceptor, in kcal/mol. It is rounded to three
// decimals, halves going up, and never goes below MinEnergy.
func Energy(n, h, c, o cmmn.Xyz) float64 {
	dHO, dHC := geom.Dist(h, o), geom.Dist(h, c)
	dNC, dNO := geom.Dist(n, c), geom.Dist(n, o)
	var e float64
	if dHO < MinDist || dHC < MinDist || dNC < MinDist || dNO < MinDist {
		e = MinEnergy
	} else {
		e = CouplingConst/dHO - CouplingConst/dHC + CouplingConst/dNC - CouplingConst/dNO
	}
	e = math.Floor(e*1000+0.5) / 1000
	return max(e, MinEnergy)
}

// amideH puts the hydrogen on the donor nitrogen, one angstrom from n,
// parallel to the previous residue's C=O.
func amideH(n, cPrev, oPrev cmmn.Xyz) cmmn.Xyz {
	d := geom.V(cPrev).Sub(geom.V(oPrev)).Norm()
	return geom.V(n).Add(d).Xyz()
}

// builder keeps per residue things we look up many times.
type builder struct {
	cx   *cmmn.Complex
	recs []Record
	pre  []int // previous residue for donors, -1 if none
}

func newBuilder(cx *cmmn.Complex) *builder {
	b := &builder{
		cx:   cx,
		recs: make([]Record, cx.NRes()),
		pre:  make([]int, cx.NRes()),
	}
	for i, r := range cx.Residues {
		b.pre[i] = -1
		if i == 0 || !r.IsProtein() {
			continue
		}
		p := cx.Residues[i-1]
		if p.Chain == r.Chain && p.IsProtein() && p.SeqNum+1 == r.SeqNum {
			b.pre[i] = i - 1
		}
	}
	return b
}

// calc does donor -> acceptor. With no previous residue, nothing is
// recorded. Proline donors are recorded with zero energy.
func (b *builder) calc(donor, acceptor int) {
	if b.pre[donor] < 0 {
		return
	}
	rd, ra := b.cx.Residues[donor], b.cx.Residues[acceptor]
	var e float64
	if rd.Name != "PRO" {
		cPrev, okc := b.cx.Residues[b.pre[donor]].Atom("C")
		oPrev, oko := b.cx.Residues[b.pre[donor]].Atom("O")
		n, okn := rd.Atom("N")
		c, okc2 := ra.Atom("C")
		o, oko2 := ra.Atom("O")
		if !(okc && oko && okn && okc2 && oko2) {
			return
		}
		e = Energy(n, amideH(n, cPrev, oPrev), c, o)
	}
	rec := &b.recs[donor]
	add(&rec.Acc, &rec.NAcc, Partner{Residue: acceptor, Energy: e})
	rec = &b.recs[acceptor]
	add(&rec.Don, &rec.NDon, Partner{Residue: donor, Energy: e})
}

// pair does both directions for lo < hi. Donor hi to acceptor lo is
// left out when they are neighbours.
func (b *builder) pair(lo, hi int) {
	b.calc(lo, hi)
	if hi != lo+1 {
		b.calc(hi, lo)
	}
}

// nearCA says if any atom of residue other is within MaxCouplingDist of
// the C alpha of residue i.
func (b *builder) nearCA(i, other int) bool {
	ca, ok := b.cx.Residues[i].CAlpha()
	if !ok {
		return false
	}
	for _, a := range b.cx.Residues[other].Atoms {
		if a.Xyz.Ok() && geom.Dist2(ca, a.Xyz) <= MaxCouplingDist*MaxCouplingDist {
			return true
		}
	}
	return false
}

func (b *builder) inContact(i, j int) bool { return b.nearCA(i, j) || b.nearCA(j, i) }

func (b *builder) direct() {
	res := b.cx.Residues
	for i := range res {
		if !res[i].IsProtein() {
			continue
		}
		for j := i + 1; j < len(res); j++ {
			if res[j].IsProtein() && b.inContact(i, j) {
				b.pair(i, j)
			}
		}
	}
}

// viaGrid collects candidate pairs with a grid and a pair table, then
// evaluates them in the same order as direct().
func (b *builder) viaGrid(tableSize int) error {
	var pts []cmmn.Xyz
	var owner []int32
	for _, r := range b.cx.Residues {
		if !r.IsProtein() {
			continue
		}
		for _, a := range r.Atoms {
			if a.Xyz.Ok() {
				pts = append(pts, a.Xyz)
				owner = append(owner, int32(r.Index))
			}
		}
	}
	if len(pts) == 0 {
		return nil
	}
	g := grid.New(cmmn.BoxOf(pts), CellHint)
	g.Insert(pts)
	if tableSize <= 0 {
		tableSize = pairs.SizeFor(pairsPerRes * b.cx.NRes())
	}
	seen := pairs.New(tableSize, pairs.DefaultBucketWidth)
	var cand [][2]int
	var err error
	for _, ri := range b.cx.Residues {
		if err != nil {
			break
		}
		ca, ok := ri.CAlpha()
		if !ok || !ri.IsProtein() {
			continue
		}
		i := ri.Index
		g.ForEachWithinRadius(ca, MaxCouplingDist, func(pt int, _ bool) {
			j := int(owner[pt])
			if err != nil || j == i {
				return
			}
			isNew, e := seen.TryAdd(i, j)
			if e != nil {
				err = e
				return
			}
			if isNew {
				cand = append(cand, [2]int{min(i, j), max(i, j)})
			}
		})
	}
	if err != nil {
		return fmt.Errorf("hydrogen bond grid: %w", err)
	}
	slices.SortFunc(cand, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	for _, p := range cand {
		b.pair(p[0], p[1])
	}
	return nil
}

// Build calculates hydrogen bonds for all protein residues of cx. The
// only error is a full pair table, which wraps pairs.ErrCapacity.
func Build(cx *cmmn.Complex, opts *Options) (*Model, error) {
	if opts == nil {
		opts = &Options{}
	}
	st := opts.Strategy
	if st == Auto {
		threshold := opts.Threshold
		if threshold <= 0 {
			threshold = GridThreshold
		}
		st = Direct
		if cx.NRes() > threshold {
			st = Grid
		}
	}
	b := newBuilder(cx)
	switch st {
	case Direct:
		b.direct()
	case Grid:
		if err := b.viaGrid(opts.TableSize); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("hbond.Build: bad strategy %v", st)
	}
	return &Model{recs: b.recs, strategy: st}, nil
}
