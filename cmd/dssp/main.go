// 16 Oct 2026
// Read protein structures and assign secondary structure.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/dssp/pkg/common"
	"github.com/andrew-torda/dssp/pkg/hbond"
	"github.com/andrew-torda/dssp/pkg/ssrun"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] file.cif [file2.cif.gz ...]")
	fmt.Fprintln(os.Stderr, "With -w, give four letter PDB codes instead of file names.")
	flag.PrintDefaults()
}

func mymain() int {
	var flags ssrun.CmdFlag
	flag.StringVar(&flags.LogDest, "l", "", `log to this file, or "stdout"`)
	flag.BoolVar(&flags.PreferPi, "p", false, "pi helices win over alpha helices")
	flag.BoolVar(&flags.Segments, "s", false, "write segments, not residues")
	flag.IntVar(&flags.Threshold, "t", hbond.GridThreshold, "residues above which the grid is used")
	flag.StringVar(&flags.Strategy, "g", hbond.Auto.String(), "hydrogen bond search: auto, direct or grid")
	flag.IntVar(&flags.NWorker, "r", 0, "structures to work on at once, 0 for one per cpu")
	flag.BoolVar(&flags.Web, "w", false, "download by PDB code")
	flag.StringVar(&flags.Chains, "c", "", "comma separated chains to keep")
	flag.BoolVar(&flags.Hetatm, "x", false, "keep all HETATM records")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		return common.ExitUsageError
	}
	if err := ssrun.Mymain(&flags, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return common.ExitFailure
	}
	return common.ExitSuccess
}

func main() {
	os.Exit(mymain())
}
