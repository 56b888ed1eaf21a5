// Package mmap maps OMF input files read-only so large binary grids can be decoded without
// copying the file into the heap first.
package mmap

import (
	"bytes"
	"errors"
	"os"
)

// File is a read-only view of a file's contents.
type File struct {
	data   []byte
	f      *os.File
	unmap  func([]byte) error
	mapped bool
}

// Open maps the file at path. Platforms without mmap support fall back to reading the file.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size := fi.Size()
	if size < 0 {
		_ = f.Close()
		return nil, errors.New("mmap: file size is negative")
	}
	if size == 0 {
		return &File{f: f}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &File{data: data, f: f, unmap: unmap, mapped: unmap != nil}, nil
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (m *File) Bytes() []byte {
	return m.data
}

// Reader returns a reader over the mapped contents.
func (m *File) Reader() *bytes.Reader {
	return bytes.NewReader(m.data)
}

// Mapped reports whether the contents are backed by a memory mapping.
func (m *File) Mapped() bool {
	return m.mapped
}

// Close unmaps the memory and closes the underlying file.
func (m *File) Close() error {
	if m == nil {
		return nil
	}

	var err error
	if m.mapped && m.data != nil {
		err = m.unmap(m.data)
	}
	m.data = nil
	m.mapped = false

	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}

	return err
}
