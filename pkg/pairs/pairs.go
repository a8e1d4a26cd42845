// 12 Oct 2026

// Package pairs remembers unordered pairs of indices, so a pair found
// from both ends is only handled once.
//
// The table has a fixed number of buckets, each with a fixed number of
// slots. It never grows. If a bucket fills up, TryAdd returns an error
// wrapping ErrCapacity and the caller should size the table bigger or
// do without it.
package pairs

import (
	"errors"
	"fmt"
)

const (
	DefaultBucketWidth = 32
	bigPrime           = 89237 // spreads hi over the buckets
	keyShift           = 32    // lo sits in the low word of the key, hi in the high
	minTableSize       = 1024
)

// ErrCapacity says a bucket overflowed.
var ErrCapacity = errors.New("pair table capacity exceeded")

// Set is a fixed size hash set of index pairs.
type Set struct {
	tableSize int
	width     int
	keys      []uint64 // tableSize * width slots, zero is empty
	n         int
}

// SizeFor suggests a table size for about nPair pairs. It leaves room
// for twice as many, so buckets stay short.
func SizeFor(nPair int) int {
	return max(2*nPair, minTableSize)
}

// New makes a set with tableSize buckets of bucketWidth slots.
func New(tableSize, bucketWidth int) *Set {
	if tableSize < 1 || bucketWidth < 1 {
		panic("pairs.New: table size and bucket width must be positive")
	}
	return &Set{
		tableSize: tableSize,
		width:     bucketWidth,
		keys:      make([]uint64, tableSize*bucketWidth),
	}
}

// Len is the number of different pairs stored.
func (s *Set) Len() int { return s.n }

// TryAdd stores the pair (a, b), which is the same as (b, a). It returns
// true if the pair is new and false if we have seen it before.
func (s *Set) TryAdd(a, b int) (bool, error) {
	if a < 0 || b < 0 || a > 0xffffffff || b > 0xffffffff {
		panic(fmt.Sprintf("pairs.TryAdd: index out of range %d %d", a, b))
	}
	lo, hi := uint64(min(a, b)), uint64(max(a, b))
	key := (lo | hi<<keyShift) + 1 // never zero
	bucket := int((lo + hi*bigPrime) % uint64(s.tableSize))
	slots := s.keys[bucket*s.width : (bucket+1)*s.width]
	for i, k := range slots {
		switch k {
		case key:
			return false, nil
		case 0:
			slots[i] = key
			s.n++
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: bucket %d of %d holds %d pairs, adding (%d, %d)",
		ErrCapacity, bucket, s.tableSize, s.width, lo, hi)
}
