package emissions

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for activity calculations.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrInvalidQuantity indicates a negative activity quantity. Negative
	// input is a data-entry bug and must surface to the caller; silently
	// zeroing it would hide the bug.
	ErrInvalidQuantity = constError("invalid activity quantity")

	// ErrUnknownActivity indicates an activity identifier absent from the
	// factor table. Only returned in strict mode; the default lenient mode
	// ignores unknown identifiers for forward compatibility with upstream
	// collaborators that add fields.
	ErrUnknownActivity = constError("unknown activity")
)
