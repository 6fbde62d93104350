package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Call contract errors
const (
	// ErrCodeInvalidArgument indicates a call was rejected before reaching the wrapped callable.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeResumeMisuse indicates a value was sent to a producer that has not suspended yet.
	ErrCodeResumeMisuse ErrorCode = "RESUME_MISUSE"
)

// Sequence errors
const (
	// ErrCodeEmptySequence indicates an unseeded reduction over an empty source.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
)

// Availability errors (retryable)
const (
	// ErrCodeCircuitOpen indicates a circuit breaker rejected the call.
	ErrCodeCircuitOpen ErrorCode = "CIRCUIT_OPEN"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeCircuitOpen: true,
	ErrCodeTimeout:     true,
	ErrCodeInternal:    false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
