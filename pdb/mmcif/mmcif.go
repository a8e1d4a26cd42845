package mmcif

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/andrew-torda/dssp/pdb/cmmn"
)

// Options say what to keep. The zero value reads all chains of the
// first model, without HETATM records unless they are amino acids.
type Options struct {
	Chains []string // Empty means all chains
	Model  int      // Model number to read, 0 means the first one seen
	Hetatm bool     // Keep all HETATM records, waters and ligands too
}

// columns we look for in the atom_site loop
const (
	colGroup = iota
	colAtom
	colAlt
	colComp
	colAuthAsym
	colLabelAsym
	colAuthSeq
	colLabelSeq
	colIns
	colX
	colY
	colZ
	colModel
	colElement
	nCol
)

var colNames = [nCol]string{
	"group_PDB", "label_atom_id", "label_alt_id", "label_comp_id",
	"auth_asym_id", "label_asym_id", "auth_seq_id", "label_seq_id",
	"pdbx_PDB_ins_code", "Cartn_x", "Cartn_y", "Cartn_z",
	"pdbx_PDB_model_num", "type_symbol",
}

const atomSite = "_atom_site."

// resKey says when a new residue starts
type resKey struct {
	seq  int
	ins  byte
	comp string
}

// reader holds the state while we go through the file.
type reader struct {
	scnr    *bufio.Scanner
	n       int    // line number
	line    string // current line
	pending bool   // line has been looked at, but not used
	opts    *Options
	cx      *cmmn.Complex
	col     [nCol]int // position in the row, -1 if absent
	nHdr    int       // number of columns in the loop
	words   []string  // scratch for splitting
	model   int
	chain   *cmmn.Chain
	res     *cmmn.Residue
	key     resKey
	alt     string // alt location kept in the current residue
	err     error
	nRead   int // atoms kept
}

type stateFn func(r *reader) stateFn

// fail stops the reading. If the input broke, that is probably why the
// line looks wrong, so the read error goes in too.
func (r *reader) fail(desc string, err error) stateFn {
	if err == nil {
		err = r.scnr.Err()
	}
	r.err = &readError{n: r.n, line: r.line, desc: desc, err: err}
	return nil
}

// next gets the next line that is not empty or a comment. It returns
// false at the end of input.
func (r *reader) next() bool {
	if r.pending {
		r.pending = false
		return true
	}
	for r.scnr.Scan() {
		r.n++
		r.line = strings.TrimSpace(r.scnr.Text())
		if r.line == "" || r.line[0] == '#' {
			continue
		}
		return true
	}
	return false
}

func (r *reader) pushback() { r.pending = true }

// stateTop looks for the start of a loop.
func stateTop(r *reader) stateFn {
	for r.next() {
		if r.line == "loop_" {
			return stateLoopHdr
		}
	}
	if err := r.scnr.Err(); err != nil {
		return r.fail("reading", err)
	}
	if r.nRead == 0 {
		return r.fail("no atom_site loop with atoms found", nil)
	}
	return nil
}

// stateLoopHdr reads the column headings of a loop. If it is not the
// atom_site loop, we go back to looking.
func stateLoopHdr(r *reader) stateFn {
	for i := range r.col {
		r.col[i] = -1
	}
	r.nHdr = 0
	isAtoms := false
	for r.next() {
		if r.line[0] != '_' {
			r.pushback()
			break
		}
		if r.nHdr == 0 {
			isAtoms = strings.HasPrefix(r.line, atomSite)
		}
		if isAtoms {
			name := strings.TrimPrefix(r.line, atomSite)
			if k := slices.Index(colNames[:], name); k >= 0 {
				r.col[k] = r.nHdr
			}
		}
		r.nHdr++
	}
	if !isAtoms {
		return stateTop
	}
	for _, must := range []int{colAtom, colComp, colX, colY, colZ} {
		if r.col[must] < 0 {
			return r.fail("atom_site loop has no column "+colNames[must], nil)
		}
	}
	if r.col[colAuthAsym] < 0 && r.col[colLabelAsym] < 0 {
		return r.fail("atom_site loop has no chain column", nil)
	}
	if r.col[colAuthSeq] < 0 && r.col[colLabelSeq] < 0 {
		return r.fail("atom_site loop has no residue number column", nil)
	}
	return stateAtoms
}

// isSpecial says if a line ends the table rows.
func isSpecial(line string) bool {
	return line[0] == '_' || strings.HasPrefix(line, "loop_") || strings.HasPrefix(line, "data_")
}

// stateAtoms reads rows of the atom_site loop.
func stateAtoms(r *reader) stateFn {
	for r.next() {
		if isSpecial(r.line) {
			r.pushback()
			return stateTop
		}
		var err error
		if r.words, err = splitCifLine(r.line, r.words); err != nil {
			return r.fail("splitting", err)
		}
		if len(r.words) != r.nHdr {
			return r.fail(fmt.Sprintf("want %d fields, got %d", r.nHdr, len(r.words)), nil)
		}
		if next := r.atom(); next != nil {
			return next
		}
	}
	return stateTop
}

// blank is true for missing values.
func blank(s string) bool { return s == "" || s == "." || s == "?" }

func (r *reader) get(c int) string {
	if r.col[c] < 0 {
		return ""
	}
	return r.words[r.col[c]]
}

func (r *reader) either(c1, c2 int) string {
	if s := r.get(c1); !blank(s) {
		return s
	}
	return r.get(c2)
}

func (r *reader) getXyz() (cmmn.Xyz, error) {
	var v [3]float32
	for i, c := range []int{colX, colY, colZ} {
		f, err := strconv.ParseFloat(r.get(c), 32)
		if err != nil {
			return cmmn.BrokenXyz, err
		}
		v[i] = float32(f)
	}
	return cmmn.Xyz{X: v[0], Y: v[1], Z: v[2]}, nil
}

// atom handles one row. It returns nil to carry on.
func (r *reader) atom() stateFn {
	comp := r.get(colComp)
	if r.get(colGroup) == "HETATM" && !r.opts.Hetatm && cmmn.ResFlagsFor(comp) != cmmn.ResProtein {
		return nil
	}
	model := 1
	if s := r.get(colModel); !blank(s) {
		var err error
		if model, err = strconv.Atoi(s); err != nil {
			return r.fail("model number", err)
		}
	}
	if r.model == 0 {
		r.model = model
	}
	if model != r.model {
		return nil
	}
	chainID := r.either(colAuthAsym, colLabelAsym)
	if len(r.opts.Chains) > 0 && !slices.Contains(r.opts.Chains, chainID) {
		return nil
	}
	seq, err := strconv.Atoi(r.either(colAuthSeq, colLabelSeq))
	if err != nil {
		return r.fail("residue number", err)
	}
	ins := byte(' ')
	if s := r.get(colIns); !blank(s) {
		ins = s[0]
	}
	xyz, err := r.getXyz()
	if err != nil {
		return r.fail("coordinates", err)
	}

	if r.chain == nil || r.chain.ChainID != chainID {
		r.chain = r.cx.AddChain(chainID)
		r.res = nil
	}
	if key := (resKey{seq: seq, ins: ins, comp: comp}); r.res == nil || key != r.key {
		r.res = r.cx.AddResidue(r.chain, comp, seq, ins)
		r.key = key
		r.alt = ""
	}
	if alt := r.get(colAlt); !blank(alt) {
		if r.alt == "" {
			r.alt = alt
		} else if alt != r.alt {
			return nil
		}
	}
	element := r.get(colElement)
	if blank(element) {
		element = ""
	}
	r.cx.AddAtom(r.res, r.get(colAtom), element, xyz)
	r.nRead++
	return nil
}

// Read reads the atom_site loop from rdr and returns the structure.
// Errors carry the line number where things went wrong.
func Read(rdr io.Reader, opts *Options) (*cmmn.Complex, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Model < 0 {
		return nil, errors.New("mmcif.Read: negative model number")
	}
	const bigLine = 1024 * 1024
	r := &reader{
		scnr:  bufio.NewScanner(rdr),
		opts:  opts,
		cx:    &cmmn.Complex{},
		model: opts.Model,
		words: make([]string, 0, nCol+10),
	}
	r.scnr.Buffer(make([]byte, 0, 64*1024), bigLine)
	for state := stateTop; state != nil; {
		state = state(r)
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.cx, nil
}
