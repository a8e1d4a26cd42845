// 14 Oct 2026

// Package dssp assigns secondary structure to protein residues in the
// manner of the DSSP program of Kabsch and Sander. Hydrogen bonds come
// from package hbond. From them we find helices, turns and beta
// bridges. Bridges are joined into ladders and ladders into sheets.
//
// Classify is the entry point. Everything is recalculated on each call
// and nothing is kept between calls.
package dssp

import (
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pkg/hbond"
	"github.com/andrew-torda/dssp/pkg/pairs"
	"github.com/andrew-torda/matrix"
)

// Options for Classify. A nil *Options is the same as the zero value.
type Options struct {
	PreferPi bool          // pi helices may replace alpha helices
	HBond    hbond.Options // how to find hydrogen bonds
	Log      *log.Logger   // gets timing and fallback notes, nil for none
}

// BetaPartner is the residue facing us in a ladder.
type BetaPartner struct {
	Residue  int
	Ladder   int
	Parallel bool
}

// NoPartner fills empty partner slots.
var NoPartner = BetaPartner{Residue: -1, Ladder: -1}

func (b BetaPartner) Ok() bool { return b.Residue >= 0 }

// ResidueStructure is the result for one residue. Sheet is zero if the
// residue is not in a ladder.
type ResidueStructure struct {
	Code    Code
	Sheet   int
	Partner [2]BetaPartner
}

// SSMap is the result of Classify, indexed like cx.Residues.
type SSMap struct {
	Res     []ResidueStructure
	Ladders []Ladder
	HBonds  *hbond.Model
}

// Codes returns one letter per residue, with "-" for loops.
func (m *SSMap) Codes() string {
	var b strings.Builder
	for _, r := range m.Res {
		b.WriteString(r.Code.String())
	}
	return b.String()
}

// bonder is all the classifier needs from a hydrogen bond model.
type bonder interface {
	IsBond(from, to int) bool
}

// classifier has the working arrays for one run.
type classifier struct {
	cx       *cmmn.Complex
	hb       bonder
	preferPi bool
	ss       []Code
	sheet    []int
	partner  [][2]BetaPartner
	bend     []bool
	flags    *matrix.BMatrix2d // stride-3 by residue
	chainLen []int             // protein residues at the start of each chain
}

func newClassifier(cx *cmmn.Complex, hb bonder, preferPi bool) *classifier {
	n := cx.NRes()
	c := &classifier{
		cx:       cx,
		hb:       hb,
		preferPi: preferPi,
		ss:       make([]Code, n),
		sheet:    make([]int, n),
		partner:  make([][2]BetaPartner, n),
		bend:     make([]bool, n),
		flags:    matrix.NewBMatrix2d(maxStride-minStride+1, n),
		chainLen: make([]int, len(cx.Chains)),
	}
	for i := range c.ss {
		c.ss[i] = Loop
		c.partner[i] = [2]BetaPartner{NoPartner, NoPartner}
	}
	for k, ch := range cx.Chains {
		for _, r := range ch.Residues {
			if !r.IsProtein() {
				break
			}
			c.chainLen[k]++
		}
	}
	return c
}

func (c *classifier) hasBreak(from, to int) bool { return chainBreak(c.cx.Residues, from, to) }

// chainBreak says if the residues from..to are not one continuous piece
// of chain, judging by sequence numbers.
func chainBreak(res []*cmmn.Residue, from, to int) bool {
	for i := from + 1; i <= to; i++ {
		if res[i].Chain != res[i-1].Chain || res[i].SeqNum != res[i-1].SeqNum+1 {
			return true
		}
	}
	return false
}

func (c *classifier) result(ladders []*Ladder) *SSMap {
	m := &SSMap{
		Res:     make([]ResidueStructure, len(c.ss)),
		Ladders: make([]Ladder, len(ladders)),
	}
	for i := range m.Res {
		m.Res[i] = ResidueStructure{Code: c.ss[i], Sheet: c.sheet[i], Partner: c.partner[i]}
	}
	for i, l := range ladders {
		m.Ladders[i] = *l
	}
	return m
}

// Classify works out hydrogen bonds and then the secondary structure of
// every residue in cx. If the grid search for hydrogen bonds runs out of
// room, we log it and do it again the slow way.
func Classify(cx *cmmn.Complex, opts *Options) (*SSMap, error) {
	if opts == nil {
		opts = &Options{}
	}
	lg := opts.Log
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	t0 := time.Now()
	hb, err := hbond.Build(cx, &opts.HBond)
	if errors.Is(err, pairs.ErrCapacity) {
		lg.Println("falling back to direct hydrogen bond search:", err)
		direct := opts.HBond
		direct.Strategy = hbond.Direct
		hb, err = hbond.Build(cx, &direct)
	}
	if err != nil {
		return nil, err
	}
	lg.Printf("hydrogen bonds for %d residues, %v strategy, %v", cx.NRes(), hb.Strategy(), time.Since(t0))

	c := newClassifier(cx, hb, opts.PreferPi)
	ladders := c.run()
	lg.Printf("classified %d residues, %d ladders, %v", cx.NRes(), len(ladders), time.Since(t0))
	m := c.result(ladders)
	m.HBonds = hb
	return m, nil
}

// run does beta structure, then helices, turns and bends chain by chain.
func (c *classifier) run() []*Ladder {
	ladders := c.buildBeta()
	for k, ch := range c.cx.Chains {
		c.helices(ch.Residues, c.chainLen[k])
	}
	return ladders
}
