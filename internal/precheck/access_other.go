//go:build !unix

package precheck

import "os"

// access probes by opening the file, since there is no access(2).
func access(path string, mode AccessMode) error {
	flag := os.O_RDONLY
	switch {
	case mode&Read != 0 && mode&Write != 0:
		flag = os.O_RDWR
	case mode&Write != 0:
		flag = os.O_WRONLY
	}
	// #nosec G304 - path is only opened to probe permissions, nothing is read or written
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return err
	}
	return f.Close()
}
