package results

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrCorruptData = errors.New("corrupt result data")
)
