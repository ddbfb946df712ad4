// Package version exposes the build version of the carboncast binary.
package version

// version is overridden at build time via
// -ldflags "-X github.com/gridleaf/carboncast/pkg/version.version=vX.Y.Z".
//
//nolint:gochecknoglobals // Build-time injection target.
var version = "dev"

// GetVersion returns the binary's version string.
func GetVersion() string {
	return version
}
