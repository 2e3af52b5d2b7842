package translator

import "errors"

// ErrInvalidExtension is returned by the batch operations for an extension
// without a leading dot.
var ErrInvalidExtension = errors.New("file extension must start with a dot")
