//go:build !linux && !darwin

package mmap

import (
	"os"
)

// Platforms without a wired mmap shim read the file into memory; callers
// see the same File interface either way.
func mapReadOnly(f *os.File, length int) ([]byte, error) {
	data := make([]byte, length)
	if _, err := f.ReadAt(data, 0); err != nil {
		return nil, err
	}
	return data, nil
}

func unmap(b []byte) error {
	return nil
}

func adviseSequential(b []byte) {}
