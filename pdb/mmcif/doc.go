// Package mmcif reads coordinates from mmcif files.
//
// Files are big, but we only want the _atom_site loop. Everything else
// is jumped over. Some features of the format make this simple.
//  1. A loop starts with a line saying loop_, followed by one line per
//     column heading, each starting with an underscore.
//  2. The PDB promises one table row per line in the atom_site loop.
//  3. A question mark means a missing value, a dot means not
//     appropriate. We treat them the same.
//
// Columns are found by their heading, so their order does not matter.
// We use the author chain names and residue numbers where they are
// given, since that is what people expect to see, and fall back to the
// label_ versions otherwise.
//
// Only the first model is read unless Options.Model says otherwise. For
// atoms with alternative locations, we keep the first location seen in
// each residue.
package mmcif
