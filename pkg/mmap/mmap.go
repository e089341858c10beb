// Package mmap provides read-only memory-mapped file access so large CSV
// inputs can be parsed without copying them onto the heap first.
package mmap

import (
	"os"

	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// File is a read-only memory mapping of a file. Data must not be written
// to; the mapping stays valid until Close.
type File struct {
	file *os.File
	data []byte
}

// Map opens path and maps it into memory, advising the kernel of
// sequential access. Empty files yield a File with no data and no mapping.
func Map(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "failed to open file").
			WithDetail("path", path)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "failed to stat file").
			WithDetail("path", path)
	}

	size := stat.Size()
	if size == 0 {
		return &File{file: f}, nil
	}

	data, err := mapReadOnly(f, int(size))
	if err != nil {
		f.Close()
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "failed to map file").
			WithDetail("path", path)
	}
	adviseSequential(data)

	return &File{file: f, data: data}, nil
}

// Data returns the mapped bytes. The slice is only valid until Close.
func (m *File) Data() []byte {
	return m.data
}

// Size returns the mapped length in bytes.
func (m *File) Size() int {
	return len(m.data)
}

// Close unmaps the file and closes the descriptor.
func (m *File) Close() error {
	var err error
	if m.data != nil {
		err = unmap(m.data)
		m.data = nil
	}
	if cerr := m.file.Close(); err == nil {
		err = cerr
	}
	return err
}
