package ingest

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4"
)

// openData opens path as a plain file or, by extension, as a compressed
// stream. Zip archives yield their largest member, the others decompress
// in place.
func openData(path string) (io.ReadCloser, error) {
	switch filepath.Ext(path) {
	case ".zip":
		return openZip(path)
	case ".gz":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		gr, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		return &layeredReadCloser{Reader: gr, closers: []io.Closer{gr, file}}, nil
	case ".lz4":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		return &layeredReadCloser{Reader: lz4.NewReader(file), closers: []io.Closer{file}}, nil
	default:
		return os.Open(path)
	}
}

func openZip(path string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}

	var largest *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largest == nil || f.UncompressedSize64 > largest.UncompressedSize64 {
			largest = f
		}
	}
	if largest == nil {
		zr.Close()
		return nil, fmt.Errorf("archive %s has no files", path)
	}

	rc, err := largest.Open()
	if err != nil {
		zr.Close()
		return nil, err
	}
	return &layeredReadCloser{Reader: rc, closers: []io.Closer{rc, zr}}, nil
}

type layeredReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (l *layeredReadCloser) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
