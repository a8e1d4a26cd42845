// 17 Oct 2026

// Package survey runs the classifier over lots of structures, like a
// local copy of the PDB's divided mmcif directory, and collects
// statistics on what it finds.
package survey

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/andrew-torda/dssp/pdb"
	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pkg/dssp"
)

// Opts control the survey. Zero values get defaults.
type Opts struct {
	NReader int           // reader goroutines, default 3
	MaxFile int           // stop after this many files, <= 0 for all
	MaxErr  int           // give up after this many broken files, default 10
	Dssp    *dssp.Options // passed on to Classify
}

// A fileRes gives us the name of the next file, but also includes
// room for an error.
type fileRes struct {
	name string
	err  error
}

// errorName sticks a problem causing filename on an error message.
func errorName(fname string, e error) error {
	return fmt.Errorf("working on %q: %w", fname, e)
}

// nextPfile looks in the directories under parentPath, visiting each
// and sending the file names down nmChan. Plain files in parentPath
// itself are sent too. We stop after maxFile files, unless maxFile <= 0.
func nextPfile(nmChan chan<- fileRes, done <-chan struct{}, parentPath string, maxFile int) {
	defer close(nmChan)
	send := func(f fileRes) bool {
		select {
		case nmChan <- f:
			return true
		case <-done:
			return false
		}
	}
	top, err := os.ReadDir(parentPath)
	if err != nil {
		send(fileRes{"", errorName(parentPath, err)})
		return
	}
	ndone := 0
	for _, d := range top {
		names := []string{filepath.Join(parentPath, d.Name())}
		if d.IsDir() {
			dname := names[0]
			sub, err := os.ReadDir(dname)
			if err != nil {
				send(fileRes{"", errorName(dname, err)})
				return
			}
			names = names[:0]
			for _, f := range sub {
				if !f.IsDir() {
					names = append(names, filepath.Join(dname, f.Name()))
				}
			}
		}
		for _, name := range names {
			if maxFile > 0 && ndone >= maxFile {
				return
			}
			if !send(fileRes{name, nil}) {
				return
			}
			ndone++
		}
	}
}

// Stats are summed over all structures.
type Stats struct {
	NFile     int
	NErr      int
	NRes      int
	NLadder   int
	NParallel int
	NSheet    int
	Code      map[dssp.Code]int // residues with each code
	NSeg      map[dssp.Code]int // segments with each code
	SegLen    map[dssp.Code]int // residues in those segments
}

func newStats() *Stats {
	return &Stats{
		Code:   make(map[dssp.Code]int),
		NSeg:   make(map[dssp.Code]int),
		SegLen: make(map[dssp.Code]int),
	}
}

// eat adds one classified structure.
func (s *Stats) eat(cx *cmmn.Complex, ss *dssp.SSMap) {
	s.NFile++
	s.NRes += cx.NRes()
	for _, r := range ss.Res {
		s.Code[r.Code]++
	}
	segs := dssp.Segments(cx, ss)
	for _, seg := range segs {
		s.NSeg[seg.Code]++
		s.SegLen[seg.Code] += seg.Len()
	}
	s.NSheet += len(dssp.Sheets(segs))
	s.NLadder += len(ss.Ladders)
	for _, l := range ss.Ladders {
		if l.Parallel {
			s.NParallel++
		}
	}
}

// merge adds o into s.
func (s *Stats) merge(o *Stats) {
	s.NFile += o.NFile
	s.NErr += o.NErr
	s.NRes += o.NRes
	s.NLadder += o.NLadder
	s.NParallel += o.NParallel
	s.NSheet += o.NSheet
	for _, m := range []struct{ dst, src map[dssp.Code]int }{
		{s.Code, o.Code}, {s.NSeg, o.NSeg}, {s.SegLen, o.SegLen},
	} {
		for k, v := range m.src {
			m.dst[k] += v
		}
	}
}

// eatPDB reads and classifies one file.
func eatPDB(fname string, opts *Opts, st *Stats, outlog *log.Logger) error {
	cx, err := pdb.ReadCoord(fname, cmmn.FileSrc, nil, outlog)
	if err != nil {
		return err
	}
	ss, err := dssp.Classify(cx, opts.Dssp)
	if err != nil {
		return errorName(fname, err)
	}
	st.eat(cx, ss)
	return nil
}

// pdbStat works on file names from nmChan until they run out or there
// have been too many errors.
func pdbStat(nmChan <-chan fileRes, opts *Opts, st *Stats, nErr *atomic.Int32,
	stop func(), outlog *log.Logger, wg *sync.WaitGroup) {
	defer wg.Done()
	for f := range nmChan {
		if f.err != nil { // A single error on the channel with names is
			outlog.Println("name channel error", f.err) // the end
			st.NErr++
			nErr.Add(1)
			stop()
			return
		}
		if err := eatPDB(f.name, opts, st, outlog); err != nil {
			outlog.Println(err)
			st.NErr++
			if int(nErr.Add(1)) >= opts.MaxErr {
				stop()
				return
			}
		}
	}
}

// Collect classifies every file under parentPath and returns the sums.
// Broken files are logged and counted. Too many of them is an error,
// but the statistics so far still come back.
func Collect(parentPath string, opts *Opts, outlog *log.Logger) (*Stats, error) {
	o := Opts{NReader: 3, MaxErr: 10}
	if opts != nil {
		o.MaxFile, o.Dssp = opts.MaxFile, opts.Dssp
		o.NReader = cmp.Or(max(opts.NReader, 0), o.NReader)
		o.MaxErr = cmp.Or(max(opts.MaxErr, 0), o.MaxErr)
	}
	if outlog == nil {
		outlog = log.New(io.Discard, "", 0)
	}
	nmChan := make(chan fileRes)
	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }
	go nextPfile(nmChan, done, parentPath, o.MaxFile)

	var wg sync.WaitGroup
	var nErr atomic.Int32
	cstats := make([]*Stats, o.NReader)
	for i := range cstats {
		cstats[i] = newStats()
		wg.Add(1)
		go pdbStat(nmChan, &o, cstats[i], &nErr, stop, outlog, &wg)
	}
	wg.Wait()
	stop()
	for range nmChan { // let nextPfile finish
	}

	dst := cstats[0]
	for _, s := range cstats[1:] { // merge all into the first
		dst.merge(s)
	}
	var err error
	if dst.NErr >= o.MaxErr {
		err = fmt.Errorf("gave up after %d broken files", dst.NErr)
	}
	if dst.NFile == 0 && err == nil {
		err = errors.New("no structures found in " + parentPath)
	}
	return dst, err
}

// Write prints a csv table, most common code first.
func (s *Stats) Write(w io.Writer) error {
	codes := make([]dssp.Code, 0, len(s.Code))
	for c := range s.Code {
		codes = append(codes, c)
	}
	slices.SortFunc(codes, func(a, b dssp.Code) int {
		return cmp.Or(cmp.Compare(s.Code[b], s.Code[a]), cmp.Compare(a, b))
	})
	fmt.Fprintf(w, "# %d files, %d broken, %d residues, %d sheets, %d ladders, %d parallel\n",
		s.NFile, s.NErr, s.NRes, s.NSheet, s.NLadder, s.NParallel)
	fmt.Fprintln(w, `"code","n","frac","nseg","meanlen"`)
	for _, c := range codes {
		var frac, meanLen float64
		if s.NRes > 0 {
			frac = float64(s.Code[c]) / float64(s.NRes)
		}
		if n := s.NSeg[c]; n > 0 {
			meanLen = float64(s.SegLen[c]) / float64(n)
		}
		if _, err := fmt.Fprintf(w, "\"%s\",%d,%.3f,%d,%.2f\n", c, s.Code[c], frac, s.NSeg[c], meanLen); err != nil {
			return err
		}
	}
	return nil
}
