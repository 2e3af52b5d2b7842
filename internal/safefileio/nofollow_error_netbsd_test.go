//go:build netbsd

package safefileio

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoFollowError(t *testing.T) {
	assert.True(t, isNoFollowError(&os.PathError{Op: "open", Err: syscall.EFTYPE}))
	assert.False(t, isNoFollowError(&os.PathError{Op: "open", Err: syscall.ENOENT}))
	assert.False(t, isNoFollowError(nil))
}
