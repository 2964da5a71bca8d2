package sx1278

import "errors"

// Driver errors
var (
	// ErrChipNotFound indicates the version register did not match the
	// SX1278 signature during Init
	ErrChipNotFound = errors.New("SX1278 not found: version register mismatch")

	// ErrNotAttached indicates hardware handles were not attached before use
	ErrNotAttached = errors.New("radio hardware handles not attached")

	// ErrPayloadTooLarge indicates a payload exceeds the FIFO staging limit
	ErrPayloadTooLarge = errors.New("payload exceeds maximum FIFO length")
)
