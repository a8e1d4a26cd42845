package pdb

var OldOrMmcif = oldOrMmcif
