// Copyright (c) 2024 Neomantra Corp
//
// File sources open an ITCH capture from disk (or stdin), transparently
// decompressing gzip or zstd by filename suffix. Adapted from the
// teacher's MakeCompressedReader/MakeCompressedWriter (compressed_io.go),
// generalized from zstd-only to also cover gzip, since historical
// TotalView-ITCH samples are distributed as ".gz" far more often than
// ".zst".

package source

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// OpenFile returns an io.Reader for filename, or os.Stdin if filename is
// "-". The returned closer must be deferred by the caller; it tears
// down any decompressor wrapping the underlying file handle.
func OpenFile(filename string, forceZstd bool) (io.Reader, io.Closer, error) {
	var reader io.Reader
	var closer io.Closer

	if filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, nil, err
		}
		reader, closer = file, file
	} else {
		reader, closer = os.Stdin, nil
	}

	switch {
	case forceZstd || strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd"):
		zr, err := zstd.NewReader(reader)
		if err != nil {
			closeIfSet(closer)
			return nil, nil, err
		}
		return zr, closeBoth(closerFunc(func() error { zr.Close(); return nil }), closer), nil

	case strings.HasSuffix(filename, ".gz") || strings.HasSuffix(filename, ".gzip"):
		gz, err := gzip.NewReader(reader)
		if err != nil {
			closeIfSet(closer)
			return nil, nil, err
		}
		return gz, closeBoth(gz, closer), nil

	default:
		return reader, closer, nil
	}
}

func closeIfSet(c io.Closer) {
	if c != nil {
		c.Close()
	}
}

// closeBoth returns an io.Closer that closes the decompressor then the
// underlying file handle (which may be nil for stdin).
func closeBoth(inner io.Closer, outer io.Closer) io.Closer {
	return closerFunc(func() error {
		err := inner.Close()
		closeIfSet(outer)
		return err
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
