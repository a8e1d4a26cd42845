package pairs_test

import (
	"errors"
	"testing"

	. "github.com/andrew-torda/dssp/pkg/pairs"
)

var addTests = []struct {
	a, b  int
	isNew bool
}{
	{1, 2, true},
	{2, 1, false},
	{1, 2, false},
	{0, 0, true},
	{0, 1, true},
	{1, 0, false},
	{70000, 3, true},
	{3, 70000, false},
}

func TestTryAdd(t *testing.T) {
	s := New(SizeFor(10), DefaultBucketWidth)
	for i, tt := range addTests {
		isNew, err := s.TryAdd(tt.a, tt.b)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if isNew != tt.isNew {
			t.Errorf("test %d (%d, %d) got %t wanted %t", i, tt.a, tt.b, isNew, tt.isNew)
		}
	}
	if s.Len() != 4 {
		t.Errorf("Len got %d wanted 4", s.Len())
	}
}

// TestMany fills a table with every pair from a small range, twice.
func TestMany(t *testing.T) {
	const n = 120
	s := New(SizeFor(n*n/2), DefaultBucketWidth)
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				a, b := i, j
				if pass == 1 {
					a, b = j, i
				}
				isNew, err := s.TryAdd(a, b)
				if err != nil {
					t.Fatal(err)
				}
				if isNew != (pass == 0) {
					t.Fatalf("pass %d pair %d %d got %t", pass, a, b, isNew)
				}
			}
		}
	}
	if want := n * (n + 1) / 2; s.Len() != want {
		t.Fatalf("Len got %d wanted %d", s.Len(), want)
	}
}

// TestCapacity uses a single bucket, so the third pair must overflow.
func TestCapacity(t *testing.T) {
	s := New(1, 2)
	for _, p := range [][2]int{{1, 2}, {3, 4}} {
		if ok, err := s.TryAdd(p[0], p[1]); !ok || err != nil {
			t.Fatalf("adding %v got %t %v", p, ok, err)
		}
	}
	if ok, err := s.TryAdd(2, 1); ok || err != nil {
		t.Fatalf("old pair in full bucket got %t %v", ok, err)
	}
	_, err := s.TryAdd(5, 6)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("wanted ErrCapacity, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len changed after failed add: %d", s.Len())
	}
}

func TestBadNew(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero table size")
		}
	}()
	New(0, DefaultBucketWidth)
}

func BenchmarkTryAdd(b *testing.B) {
	s := New(SizeFor(b.N), DefaultBucketWidth)
	for i := 0; i < b.N; i++ {
		if _, err := s.TryAdd(i, i/3); err != nil {
			b.Fatal(err)
		}
	}
}
