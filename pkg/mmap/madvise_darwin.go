//go:build darwin

package mmap

import (
	"syscall"
	"unsafe"
)

const madvSequential = 2

func madviseSequential(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, _, errno := syscall.Syscall(syscall.SYS_MADVISE,
		uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), madvSequential)
	if errno != 0 {
		return errno
	}
	return nil
}
