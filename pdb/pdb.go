// This is the upper level for reading PDB files.
// Decide if a file is compressed or not, and what format
// we are going to read. Then call the mmcif reader.

package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/dssp/pdb/cmmn"
	"github.com/andrew-torda/dssp/pdb/mmcif"
	"github.com/andrew-torda/dssp/pdb/zwrap"
)

const (
	OldFmt byte = iota
	MmcifFmt
	UnkFmt
)

// ErrOldFormat comes back for files in the old, column based format.
var ErrOldFormat = errors.New("old pdb format is not read, only mmcif")

// comparefirst says if s starts with the word w.
func comparefirst(s, w string) bool {
	return len(s) >= len(w) && s[:len(w)] == w
}

// lookInFile opens a file and guesses if it is in old PDB format or
// in mmcif.
func lookInFile(fname string) (byte, error) {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM"}
	mmcifWords := []string{"data_", "_entry.id", "loop_"}
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return UnkFmt, fmt.Errorf("reading %s: %w", fname, err)
	}
	defer rdr.Close()

	const maxTestLines = 5000
	scnnr := bufio.NewScanner(rdr)
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		for _, w := range mmcifWords {
			if comparefirst(s, w) {
				return MmcifFmt, nil
			}
		}
		for _, w := range pdbWords {
			if comparefirst(s, w) {
				return OldFmt, nil
			}
		}
	}
	return UnkFmt, errors.New(fname + ": cannot recognise format")
}

// oldOrMmcif decides what format we will use. It tries the file name
// first, then peeks inside. We cannot use filepath.Ext, since it
// would return .gz for a.pdb.gz.
func oldOrMmcif(fname string) (byte, error) {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = strings.ToLower(s[i+1:]) // change .ent to ent
		switch {
		case strings.Contains(s, "pdb") || strings.Contains(s, "ent"):
			return OldFmt, nil
		case strings.Contains(s, "cif"):
			return MmcifFmt, nil
		}
	}
	return lookInFile(fname)
}

// LogWhere decides where to send logged output. "" throws it away,
// "stdout" is standard output and anything else is a file we append to.
func LogWhere(outinfo string) (*log.Logger, error) {
	var iowriter io.Writer
	switch outinfo {
	case "":
		iowriter = io.Discard
	case "stdout":
		iowriter = os.Stdout
	default:
		var err error
		iowriter, err = os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
	}
	return log.New(iowriter, "", log.Lshortfile), nil
}

// ReadCoord reads coordinates from an mmcif file, which may be gzipped.
// With srcType cmmn.HTTPSrc, fname is a four letter PDB code and we
// download it, trying each site in turn. outlog may be nil.
func ReadCoord(fname string, srcType byte, opts *mmcif.Options, outlog *log.Logger) (*cmmn.Complex, error) {
	if outlog == nil {
		outlog = log.New(io.Discard, "", 0)
	}
	var rdr io.ReadCloser
	switch srcType {
	case cmmn.FileSrc:
		typ, err := oldOrMmcif(fname)
		if err != nil {
			return nil, err
		}
		if typ == OldFmt {
			return nil, fmt.Errorf("%s: %w", fname, ErrOldFormat)
		}
		if rdr, err = zwrap.Open(fname); err != nil {
			return nil, fmt.Errorf("reading %s: %w", fname, err)
		}
	case cmmn.HTTPSrc:
		var errs []error
		for site := 0; site < nPDBsites; site++ {
			r, err := getHTTP(fname, site)
			if err == nil {
				rdr = r
				break
			}
			outlog.Println("download:", err)
			errs = append(errs, err)
		}
		if rdr == nil {
			return nil, errors.Join(errs...)
		}
	default:
		return nil, fmt.Errorf("ReadCoord: unknown source type %d", srcType)
	}
	defer rdr.Close()

	cx, err := mmcif.Read(rdr, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	outlog.Println(fname, "chains", len(cx.Chains), "residues", cx.NRes(), "atoms", cx.NAtom())
	return cx, nil
}
