//go:build linux || darwin

package mmap

import (
	"os"
	"syscall"
)

func mapReadOnly(f *os.File, length int) ([]byte, error) {
	return syscall.Mmap(int(f.Fd()), 0, length, syscall.PROT_READ, syscall.MAP_SHARED)
}

func unmap(b []byte) error {
	return syscall.Munmap(b)
}

// adviseSequential hints the kernel that the mapping will be scanned
// front to back. Advice failures are ignored; they only cost readahead.
func adviseSequential(b []byte) {
	_ = madviseSequential(b)
}
