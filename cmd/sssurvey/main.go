// 17 Oct 2026
// Classify every structure under a directory and print statistics.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/andrew-torda/dssp/pdb"
	"github.com/andrew-torda/dssp/pkg/common"
	"github.com/andrew-torda/dssp/pkg/dssp"
	"github.com/andrew-torda/dssp/pkg/hbond"
	"github.com/andrew-torda/dssp/pkg/survey"
)

const parentPathDflt = "/work/public/no_backup/pdb/data/structures/divided/mmCIF/"

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] [directory]")
	fmt.Fprintln(os.Stderr, "Default directory is", parentPathDflt)
	flag.PrintDefaults()
}

func mymain() int {
	opts := survey.Opts{NReader: 3, MaxErr: 10}
	var outFname, logDest, strategy string
	var preferPi bool
	flag.IntVar(&opts.NReader, "r", opts.NReader, "num reader threads")
	flag.IntVar(&opts.MaxFile, "f", opts.MaxFile, "max num files to read, 0 for all")
	flag.IntVar(&opts.MaxErr, "e", opts.MaxErr, "give up after this many broken files")
	flag.StringVar(&outFname, "o", "", "output filename instead of stdout")
	flag.StringVar(&logDest, "l", "", `log to this file, or "stdout"`)
	flag.StringVar(&strategy, "g", hbond.Auto.String(), "hydrogen bond search: auto, direct or grid")
	flag.BoolVar(&preferPi, "p", false, "pi helices win over alpha helices")
	flag.Usage = usage
	flag.Parse()
	parentPath := parentPathDflt
	switch flag.NArg() {
	case 0:
	case 1:
		parentPath = flag.Arg(0)
	default:
		usage()
		return common.ExitUsageError
	}

	st, err := hbond.ParseStrategy(strategy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return common.ExitUsageError
	}
	outlog, err := pdb.LogWhere(logDest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return common.ExitFailure
	}
	opts.Dssp = &dssp.Options{PreferPi: preferPi, HBond: hbond.Options{Strategy: st}, Log: outlog}

	var w io.Writer = os.Stdout
	if outFname != "" {
		fp, err := os.Create(outFname)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return common.ExitFailure
		}
		defer fp.Close()
		w = fp
	}
	stats, err := survey.Collect(parentPath, &opts, outlog)
	if stats != nil && stats.NFile > 0 {
		if e := stats.Write(w); e != nil {
			fmt.Fprintln(os.Stderr, e)
			return common.ExitFailure
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return common.ExitFailure
	}
	return common.ExitSuccess
}

func main() {
	os.Exit(mymain())
}
