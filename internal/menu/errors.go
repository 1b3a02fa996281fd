package menu

import "fmt"

// Storage operations reported in StorageError.Op.
const (
	OpRead   = "read"
	OpDecode = "decode"
	OpEncode = "encode"
	OpWrite  = "write"
)

// StorageError reports a failed load or save of the catalog document. A
// missing document is not a StorageError; Load treats it as an empty menu.
type StorageError struct {
	Op       string
	Location string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("menu %s %s: %v", e.Op, e.Location, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
