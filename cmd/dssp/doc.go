// 16 Oct 2026

/*
Dssp assigns secondary structure to proteins from their coordinates,
following Kabsch and Sander. Backbone hydrogen bonds are found from an
electrostatic energy, then turns, helices, bridges, ladders and sheets
are built from the bond pattern.

Files are mmcif, plain or gzipped. Several files can be given and they
are worked on in parallel, but the output comes in the order of the
command line. If a file cannot be read, the others are still written
and the command exits with failure.

Usage:

	dssp [flags] file.cif [file2.cif.gz ...]

The flags are:

	-c chains
		Comma separated list of chains to read. Default is all.
	-g strategy
		How to look for hydrogen bonds. "direct" checks all residue
		pairs, "grid" uses a spatial grid and "auto" picks the grid for
		big structures.
	-l logfile
		Write timing and notes to logfile, or "stdout".
	-p
		Prefer pi helices. Let them replace alpha helices.
	-r n
		Work on n structures at once.
	-s
		Write one line per helix or strand, not one per residue.
	-t n
		With -g auto, use the grid above n residues.
	-w
		The arguments are four letter PDB codes. Download them.
	-x
		Keep all HETATM records. Normally only amino acids are kept.

Per residue, the output has the residue number in the file, chain,
sequence number with insertion code, residue name, structure code, sheet,
the sequence numbers of two beta partners and the kappa, alpha, phi and
psi angles. Loops are written as "-".
*/
package main
