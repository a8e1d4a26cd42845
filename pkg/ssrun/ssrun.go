// 16 Oct 2026

// Package ssrun does the work for the dssp command. Read one or more
// structures, classify them and write a table per structure.
package ssrun

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	"github.com/andrew-torda/dssp/pdb"
	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/geom"
	"github.com/andrew-torda/dssp/pdb/mmcif"
	"github.com/andrew-torda/dssp/pkg/dssp"
	"github.com/andrew-torda/dssp/pkg/hbond"
	"golang.org/x/sync/errgroup"
)

type CmdFlag struct {
	LogDest   string // "" for nothing, "stdout" or a file name
	PreferPi  bool   // pi helices win over alpha helices
	Segments  bool   // write segments instead of one line per residue
	Threshold int    // residues above which the grid is used
	Strategy  string // auto, direct or grid
	NWorker   int    // structures read and classified at once
	Web       bool   // arguments are PDB codes to download
	Chains    string // comma separated chains, empty for all
	Hetatm    bool   // keep all HETATM records
}

// job is one structure and what became of it.
type job struct {
	name string
	cx   *cmmn.Complex
	ss   *dssp.SSMap
	err  error
}

func (j *job) run(src byte, mOpts *mmcif.Options, dOpts *dssp.Options, outlog *log.Logger) {
	if j.cx, j.err = pdb.ReadCoord(j.name, src, mOpts, outlog); j.err != nil {
		return
	}
	if j.ss, j.err = dssp.Classify(j.cx, dOpts); j.err != nil {
		j.err = fmt.Errorf("%s: %w", j.name, j.err)
	}
}

// angle prints NoAngle as blanks.
func angle(a float64) string {
	if a == geom.NoAngle {
		return "      "
	}
	return fmt.Sprintf("%6.1f", a)
}

// partner gives the sequence number of a beta partner, or 0.
func partner(cx *cmmn.Complex, p dssp.BetaPartner) int {
	if !p.Ok() {
		return 0
	}
	return cx.Residues[p.Residue].SeqNum
}

func insCode(r *cmmn.Residue) byte {
	if r.InsCode == 0 {
		return ' '
	}
	return r.InsCode
}

// wrtResidues writes one line per residue.
func wrtResidues(w io.Writer, j *job) error {
	fmt.Fprintf(w, "# %s %d residues %d ladders\n", j.name, j.cx.NRes(), len(j.ss.Ladders))
	fmt.Fprintln(w, "#  num ch  resn res ss sheet  bp1  bp2  kappa  alpha    phi    psi")
	angles := dssp.Angles(j.cx)
	for i, r := range j.cx.Residues {
		rs := j.ss.Res[i]
		a := angles[i]
		_, err := fmt.Fprintf(w, "%6d %2s %5d%c %3s  %s %5d %4d %4d %s %s %s %s\n",
			i+1, r.Chain.ChainID, r.SeqNum, insCode(r), r.Name, rs.Code, rs.Sheet,
			partner(j.cx, rs.Partner[0]), partner(j.cx, rs.Partner[1]),
			angle(a.Kappa), angle(a.Alpha), angle(a.Phi), angle(a.Psi))
		if err != nil {
			return err
		}
	}
	return nil
}

// wrtSegments writes one line per secondary structure element, skipping
// loops.
func wrtSegments(w io.Writer, j *job) error {
	segs := dssp.Segments(j.cx, j.ss)
	fmt.Fprintf(w, "# %s %d sheets\n", j.name, len(dssp.Sheets(segs)))
	fmt.Fprintln(w, "# ss ch  from    to  len sheet helix class")
	for _, s := range segs {
		if s.Code == dssp.Loop {
			continue
		}
		first, last := j.cx.Residues[s.Start], j.cx.Residues[s.End]
		_, err := fmt.Fprintf(w, "  %s %2s %5d%c %5d%c %4d %5d %5d %5d\n",
			s.Code, first.Chain.ChainID, first.SeqNum, insCode(first),
			last.SeqNum, insCode(last), s.Len(), s.Sheet, s.Helix, s.HelixClass)
		if err != nil {
			return err
		}
	}
	return nil
}

// Mymain classifies every structure in names and writes the results to
// w in the order of names. A structure which cannot be read does not
// stop the others. All the errors are returned together.
func Mymain(flags *CmdFlag, names []string, w io.Writer) error {
	if len(names) == 0 {
		return errors.New("no structures given")
	}
	outlog, err := pdb.LogWhere(flags.LogDest)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	strategy := hbond.Auto
	if flags.Strategy != "" {
		if strategy, err = hbond.ParseStrategy(flags.Strategy); err != nil {
			return err
		}
	}
	dOpts := &dssp.Options{
		PreferPi: flags.PreferPi,
		HBond:    hbond.Options{Strategy: strategy, Threshold: flags.Threshold},
		Log:      outlog,
	}
	mOpts := &mmcif.Options{Hetatm: flags.Hetatm}
	if flags.Chains != "" {
		mOpts.Chains = strings.Split(flags.Chains, ",")
	}
	src := cmmn.FileSrc
	if flags.Web {
		src = cmmn.HTTPSrc
	}

	nWorker := flags.NWorker
	if nWorker < 1 {
		nWorker = runtime.GOMAXPROCS(0)
	}
	jobs := make([]job, len(names))
	var g errgroup.Group
	g.SetLimit(nWorker)
	for i := range jobs {
		j := &jobs[i]
		j.name = names[i]
		g.Go(func() error { // errors stay with their job
			j.run(src, mOpts, dOpts, outlog)
			return nil
		})
	}
	g.Wait()

	wrt := wrtResidues
	if flags.Segments {
		wrt = wrtSegments
	}
	var errs []error
	for i := range jobs {
		j := &jobs[i]
		if j.err != nil {
			errs = append(errs, j.err)
			continue
		}
		if err := wrt(w, j); err != nil {
			return errors.Join(append(errs, err)...)
		}
	}
	return errors.Join(errs...)
}
