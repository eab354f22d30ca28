package ports

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
