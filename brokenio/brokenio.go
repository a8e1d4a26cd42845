// brokenio is a wrapper around an io.ReadCloser which lets reads fail.
// Typical use: You get a file pointer, a reader from a compressed
// source or an http source. You write
// reader = brokenio.NewReader(reader, seed) to wrap the old reader.
// Everything then works as before, but with errors where you ask for
// them.
// A failure on the very first read returns no data and io.EOF, without
// an error. This is what one sees with a zero length file.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrInjected is wrapped by every error we make up.
var ErrInjected = errors.New("injected read failure")

// Reader has the probabilities of failures. A value of 0.05 means
// failure in 5% of the reads.
type Reader struct {
	rdrOrig      io.ReadCloser
	rnd          *rand.Rand
	probZeroFile float32 // probability of looking like a zero length file
	probFail     float32 // probability that a read returns an error
	failAfter    int     // fail once this many bytes are through, -1 for never
	nCalled      int
	nByte        int
}

// NewReader wraps rIn. With no settings, nothing breaks.
func NewReader(rIn io.ReadCloser, seed int64) *Reader {
	return &Reader{rdrOrig: rIn, rnd: rand.New(rand.NewSource(seed)), failAfter: -1}
}

// SetProbZeroFile sets the chance that the first read gives nothing. It
// should be from 0 to 1. We do not check.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail sets the chance that any read fails after delivering half
// of what it read.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes reading fail once n bytes have been delivered.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// NCalled is the number of reads that went to the wrapped reader.
func (r *Reader) NCalled() int { return r.nCalled }

// NByte is the number of bytes delivered.
func (r *Reader) NByte() int { return r.nByte }

// Read wraps the original reader and counts the data that has gone
// through.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		return 0, io.EOF
	}
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, fmt.Errorf("%w after %d bytes", ErrInjected, r.nByte)
		}
		p = p[:min(len(p), left)]
	}
	n, err := r.rdrOrig.Read(p)
	r.nCalled++
	if r.probFail > 0 && r.rnd.Float32() < r.probFail {
		n /= 2
		r.nByte += n
		return n, fmt.Errorf("%w after %d bytes", ErrInjected, r.nByte)
	}
	r.nByte += n
	return n, err
}

// Close wraps the original Close method.
func (r *Reader) Close() error { return r.rdrOrig.Close() }
