package cmmn

// ResFlag says what kind of residue we have. Only ResProtein matters
// for secondary structure.
type ResFlag uint8

const (
	ResProtein ResFlag = 1 << iota
	ResNucleic
)

var aminoNames = []string{
	"ALA", "ARG", "ASN", "ASP", "CYS", "GLN", "GLU", "GLY", "HIS", "ILE",
	"LEU", "LYS", "MET", "PHE", "PRO", "SER", "THR", "TRP", "TYR", "VAL",
	"MSE", "SEC", "PYL", "ASX", "GLX", "UNK",
}

var nucleicNames = []string{
	"A", "C", "G", "U", "I", "T", "N",
	"DA", "DC", "DG", "DT", "DU", "DI", "DN",
}

// ResFlagsFor guesses the residue flags from a three letter residue name.
// Anything we do not know gets no flags.
func ResFlagsFor(name string) ResFlag {
	for _, s := range aminoNames {
		if s == name {
			return ResProtein
		}
	}
	for _, s := range nucleicNames {
		if s == name {
			return ResNucleic
		}
	}
	return 0
}

// Atom is one atom with its position and the residue it belongs to.
type Atom struct {
	Name    string // like "CA" or "O5'"
	Element string
	Xyz     Xyz
	Res     *Residue
}

// Residue has a dense Index over the whole complex and a SeqNum from
// the file. SeqNum may have gaps. That is how we see chain breaks.
type Residue struct {
	Index   int
	SeqNum  int
	InsCode byte
	Name    string
	Flags   ResFlag
	Atoms   []*Atom
	Chain   *Chain
}

// Atom returns the coordinates of the first atom with the given name.
func (r *Residue) Atom(name string) (Xyz, bool) {
	for _, a := range r.Atoms {
		if a.Name == name {
			return a.Xyz, true
		}
	}
	return BrokenXyz, false
}

// CAlpha gives us the alpha carbon, or C1 for nucleotides, whichever
// comes first in the residue.
func (r *Residue) CAlpha() (Xyz, bool) {
	for _, a := range r.Atoms {
		if a.Name == "CA" || a.Name == "C1" {
			return a.Xyz, true
		}
	}
	return BrokenXyz, false
}

func (r *Residue) IsProtein() bool { return r.Flags&ResProtein != 0 }

// A Chain is an ordered list of residues.
type Chain struct {
	ChainID  string // Name, like "A" or "B"
	Index    int
	Residues []*Residue
}

// Complex holds everything we read. Residues are numbered in the order
// they are added, which must be chain by chain.
type Complex struct {
	Chains   []*Chain
	Residues []*Residue
	Atoms    []*Atom
}

// AddChain appends a new, empty chain.
func (cx *Complex) AddChain(id string) *Chain {
	c := &Chain{ChainID: id, Index: len(cx.Chains)}
	cx.Chains = append(cx.Chains, c)
	return c
}

// AddResidue appends a residue to the chain c, which must be the
// last chain added, so residue indices stay grouped by chain.
func (cx *Complex) AddResidue(c *Chain, name string, seqNum int, insCode byte) *Residue {
	if len(cx.Chains) == 0 || cx.Chains[len(cx.Chains)-1] != c {
		panic("AddResidue: residues must be added to the last chain")
	}
	r := &Residue{
		Index:   len(cx.Residues),
		SeqNum:  seqNum,
		InsCode: insCode,
		Name:    name,
		Flags:   ResFlagsFor(name),
		Chain:   c,
	}
	c.Residues = append(c.Residues, r)
	cx.Residues = append(cx.Residues, r)
	return r
}

// AddAtom puts an atom into residue r.
func (cx *Complex) AddAtom(r *Residue, name, element string, xyz Xyz) *Atom {
	a := &Atom{Name: name, Element: element, Xyz: xyz, Res: r}
	r.Atoms = append(r.Atoms, a)
	cx.Atoms = append(cx.Atoms, a)
	return a
}

func (cx *Complex) NRes() int  { return len(cx.Residues) }
func (cx *Complex) NAtom() int { return len(cx.Atoms) }

// Box is the bounding box of all atoms.
func (cx *Complex) Box() Box {
	pts := make(XyzSl, len(cx.Atoms))
	for i, a := range cx.Atoms {
		pts[i] = a.Xyz
	}
	return BoxOf(pts)
}

// ChainNames returns a slice with the names of the chains.
func (cx *Complex) ChainNames() (ret []string) {
	ret = make([]string, len(cx.Chains))
	for i, k := range cx.Chains {
		ret[i] = k.ChainID
	}
	return
}
