// Package zwrap gives back a reader for a file or stream which may or
// may not be gzipped. Upon calling Close, the decompressor will be
// closed, followed by the underlying file or stream.
//
// Files are memory mapped. Coordinate files are read once from start
// to end, so there is no point copying them through a buffer.

package zwrap

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

var gzMagic = []byte{0x1f, 0x8b}

// FpGzip is what we return.
type FpGzip struct {
	fp   io.ReadCloser
	src  io.Reader // fp, or something in front of it
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying backing ReadCloser.
func (fc *FpGzip) Close() error {
	var zerr error
	if fc.zrdr != nil {
		zerr = fc.zrdr.Close()
	}
	return errors.Join(zerr, fc.fp.Close())
}

// Read makes sure we read from the decompressed stream and not the
// underlying file or stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.src.Read(p)
}

// Compressed says if we are decompressing.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Wrap takes a source like an http stream and wraps it, so the correct
// Read and Close will be called. It peeks at the first bytes to decide
// if the source is gzipped.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	br := bufio.NewReader(fp)
	fpz := &FpGzip{fp: fp, src: br}
	head, err := br.Peek(len(gzMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Join(err, fp.Close())
	}
	if !bytes.Equal(head, gzMagic) {
		return fpz, nil
	}
	if fpz.zrdr, err = gzip.NewReader(br); err != nil {
		return nil, errors.Join(err, fp.Close())
	}
	return fpz, nil
}

// mapped is a memory mapped file which can be read and closed.
type mapped struct {
	*bytes.Reader
	mm mmap.MMap
	fp *os.File
}

func (m *mapped) Close() error {
	var uerr error
	if m.mm != nil {
		uerr = m.mm.Unmap()
	}
	return errors.Join(uerr, m.fp.Close())
}

// Open maps fname into memory and hands back a reader, decompressing
// if the file starts like a gzip file.
func Open(fname string) (*FpGzip, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		return nil, errors.Join(err, fp.Close())
	}
	m := &mapped{fp: fp}
	if fi.Size() > 0 { // an empty file cannot be mapped
		if m.mm, err = mmap.Map(fp, mmap.RDONLY, 0); err != nil {
			return nil, errors.Join(err, fp.Close())
		}
	}
	m.Reader = bytes.NewReader(m.mm)
	fpz := &FpGzip{fp: m, src: m}
	if !bytes.HasPrefix(m.mm, gzMagic) {
		return fpz, nil
	}
	if fpz.zrdr, err = gzip.NewReader(m); err != nil {
		return nil, errors.Join(err, m.Close())
	}
	return fpz, nil
}
