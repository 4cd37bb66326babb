// Package proto holds the edition agnostic protocol version types
// shared by the registry, the resolver and the session.
package proto

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultAliasSeparator joins the first and last name of a
// multi-name Version and splits a version name into its aliases.
const DefaultAliasSeparator = "-"

// Protocol is a protocol version id specified by Mojang.
type Protocol int

// Unknown is the protocol of no known version.
const Unknown Protocol = -1

// String implements fmt.Stringer.
func (p Protocol) String() string {
	return strconv.Itoa(int(p))
}

// Unknown reports whether p is the Unknown protocol.
func (p Protocol) Unknown() bool { return p == Unknown }

// Version is a named protocol version.
type Version struct {
	Protocol          // The protocol number of the version.
	Names    []string // The names in this protocol version (at least one).
}

// FirstName returns the user-friendly name of
// the version this protocol was introduced in.
func (v *Version) FirstName() string {
	if len(v.Names) == 0 {
		return ""
	}
	return v.Names[0]
}

// LastName returns the user-friendly name of
// the last version of this protocol.
func (v *Version) LastName() string {
	if len(v.Names) == 0 {
		return ""
	}
	return v.Names[len(v.Names)-1]
}

// Name returns the user-friendly name of this protocol version.
// If this version has multiple names it returns {first}-{last} version.
func (v *Version) Name() string {
	if len(v.Names) > 1 {
		return fmt.Sprintf("%s%s%s", v.FirstName(), DefaultAliasSeparator, v.LastName())
	}
	return v.FirstName()
}

// Aliases splits the Name on sep, dropping empty fields.
// A Name without sep yields itself as the only alias.
func (v *Version) Aliases(sep string) []string {
	if sep == "" {
		return []string{v.Name()}
	}
	var aliases []string
	for _, alias := range strings.Split(v.Name(), sep) {
		if alias != "" {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return v.Name()
}
