package refdata

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for catalog lookups.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrUnknownRegion indicates a region code absent from the catalog.
	// Callers are expected to substitute DefaultRegion rather than fail.
	ErrUnknownRegion = constError("unknown region code")

	// ErrInvalidSeason indicates a season string outside the closed
	// enumeration {spring, summer, autumn, winter}.
	ErrInvalidSeason = constError("invalid season")

	// ErrUnknownTemplate indicates a shape template name absent from the catalog.
	ErrUnknownTemplate = constError("unknown shape template")

	// ErrUnknownDevice indicates a device preset name absent from the catalog.
	ErrUnknownDevice = constError("unknown device preset")

	// ErrInvalidCatalog indicates reference data that failed integrity
	// validation at load time (bad mix sums, negative factors, short curves).
	ErrInvalidCatalog = constError("invalid reference catalog")

	// ErrUnsupportedSchema indicates a catalog schema_version outside the
	// range this binary understands.
	ErrUnsupportedSchema = constError("unsupported catalog schema version")
)
