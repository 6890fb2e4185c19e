package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Graph errors
const (
	// ErrCodeCycleDetected indicates a dependency graph contains a cycle.
	ErrCodeCycleDetected ErrorCode = "CYCLE_DETECTED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Process exit statuses reported for each code family.
const (
	ExitFailure  = 1
	ExitInvalid  = 2
	ExitNotFound = 3
	ExitCycle    = 4
)

var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidInput:  ExitInvalid,
	ErrCodeMissingField:  ExitInvalid,
	ErrCodeInvalidFormat: ExitInvalid,
	ErrCodeNotFound:      ExitNotFound,
	ErrCodeCycleDetected: ExitCycle,
	ErrCodeInternal:      ExitFailure,
}

// ExitCodeFor returns the process exit status for an error code.
func ExitCodeFor(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return ExitFailure
}
