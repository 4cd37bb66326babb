// Package registry provides the catalog of known protocol versions
// and the translation paths between them.
package registry

import (
	"go.minekube.com/vselect/pkg/proto"
)

// Registry is a read-only catalog of protocol versions and the
// translation paths between them.
type Registry interface {
	// IsRegistered reports whether p names a known version.
	IsRegistered(p proto.Protocol) bool
	// Protocol returns the version of p.
	Protocol(p proto.Protocol) (*proto.Version, bool)
	// Protocols returns all known versions ordered from lowest to highest.
	Protocols() []*proto.Version
	// Closest returns the version best matching name, or nil.
	Closest(name string) *proto.Version
	// Path returns the protocols a connection speaking from must be
	// translated through to speak to, excluding from itself.
	// It returns nil if no translation exists.
	Path(from, to proto.Protocol) []proto.Protocol
	// Native returns the protocol the translation layer speaks.
	Native() proto.Protocol
	// Supported reports whether p is the native protocol or
	// a translation path from the native protocol to p exists.
	Supported(p proto.Protocol) bool
}

// Supported is the shared Registry.Supported rule.
func Supported(r Registry, p proto.Protocol) bool {
	native := r.Native()
	return p == native || r.Path(native, p) != nil
}
