// Package version holds the vselect build version.
package version

// Set using -ldflags "-X go.minekube.com/vselect/pkg/version.version=v1.2.3"
var version = "unknown"

// String returns the vselect build version.
func String() string {
	return version
}
