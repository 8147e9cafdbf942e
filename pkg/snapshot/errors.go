package snapshot

import "fmt"

// StorageError is a failure of the snapshot database.
type StorageError struct {
	Operation string // Operation that failed ("open", "save", "load", ...)
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("snapshot storage error [driver=%s, operation=%s]: %v", driverName, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

func storageError(op string, cause error) *StorageError {
	return &StorageError{Operation: op, Cause: cause}
}
