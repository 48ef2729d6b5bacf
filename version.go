// Package calc provides the version information for calc-go.
package calc

// Version is the current version of calc-go.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
