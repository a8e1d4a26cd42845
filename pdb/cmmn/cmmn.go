// Package pdb/cmmn has common definitions for coordinates and the
// chains, residues and atoms read from pdb files.
package cmmn

import (
	"math"
)

// Does our data come from a file or http source ?
const (
	FileSrc byte = iota
	HTTPSrc
)

type Xyz struct{ X, Y, Z float32 }
type XyzSl []Xyz // xyz's are coordinates

var BrokenXyz = Xyz{math.MaxFloat32, 0, -math.MaxFloat32}

func (xyz *Xyz) Ok() bool {
	if *xyz != BrokenXyz {
		return true
	}
	return false
}

// Box is an axis aligned bounding box.
type Box struct{ Min, Max Xyz }

// BoxOf returns the smallest box holding all the points. Broken
// coordinates are ignored. With no valid points, you get a zero box.
func BoxOf(pts XyzSl) Box {
	var b Box
	first := true
	for _, p := range pts {
		if !p.Ok() {
			continue
		}
		if first {
			b.Min, b.Max = p, p
			first = false
			continue
		}
		b.Min.X, b.Max.X = min(b.Min.X, p.X), max(b.Max.X, p.X)
		b.Min.Y, b.Max.Y = min(b.Min.Y, p.Y), max(b.Max.Y, p.Y)
		b.Min.Z, b.Max.Z = min(b.Min.Z, p.Z), max(b.Max.Z, p.Z)
	}
	return b
}

// Size gives the edge lengths of the box.
func (b Box) Size() Xyz {
	return Xyz{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

// Grow returns the box with every face pushed out by d.
func (b Box) Grow(d float32) Box {
	return Box{
		Min: Xyz{b.Min.X - d, b.Min.Y - d, b.Min.Z - d},
		Max: Xyz{b.Max.X + d, b.Max.Y + d, b.Max.Z + d},
	}
}

// Contains says if p lies in the box, faces included.
func (b Box) Contains(p Xyz) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
