//go:build unix

package precheck

import "golang.org/x/sys/unix"

func access(path string, mode AccessMode) error {
	var how uint32
	if mode&Read != 0 {
		how |= unix.R_OK
	}
	if mode&Write != 0 {
		how |= unix.W_OK
	}
	return unix.Access(path, how)
}
