// Package resolve turns free-form user input into a protocol version.
//
// Resolution is a pure function of the input text, the registry and
// the previously selected protocol. Writing the result anywhere is up
// to the caller.
package resolve

import (
	"strconv"
	"strings"

	"go.minekube.com/vselect/pkg/proto"
	"go.minekube.com/vselect/pkg/registry"
)

// Result is the outcome of resolving one input text.
type Result struct {
	// Protocol is the resolved protocol, or the prior protocol if the
	// input was not valid.
	Protocol proto.Protocol
	// Valid is true if the input was a number or matched a version.
	Valid bool
	// Supported is true if Protocol is the native protocol or can be
	// translated to. Only meaningful if Valid.
	Supported bool
	// Suggestion is the remainder of the single completion of an
	// invalid input. Only set if HasSuggestion.
	Suggestion    string
	HasSuggestion bool
}

// Status classifies a Result for display.
func (r Result) Status() Status {
	switch {
	case !r.Valid:
		return StatusInvalid
	case !r.Supported:
		return StatusUnsupported
	default:
		return StatusSupported
	}
}

// Resolver resolves input texts against a registry.
type Resolver struct {
	reg registry.Registry
	sep string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSeparator sets the separator splitting version names into aliases.
func WithSeparator(sep string) Option {
	return func(r *Resolver) {
		if sep != "" {
			r.sep = sep
		}
	}
}

// New returns a new Resolver using reg.
func New(reg registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{reg: reg, sep: proto.DefaultAliasSeparator}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Registry returns the registry the Resolver resolves against.
func (r *Resolver) Registry() registry.Registry { return r.reg }

// Resolve resolves text.
// Decimal numbers within the 32-bit range are taken as protocol ids.
// The prior protocol is kept as Result.Protocol if text is not valid.
func (r *Resolver) Resolve(text string, prior proto.Protocol) Result {
	res := Result{Protocol: prior, Valid: true}
	if id, err := strconv.ParseInt(text, 10, 32); err == nil {
		res.Protocol = proto.Protocol(id)
	} else if closest := r.reg.Closest(text); closest != nil {
		res.Protocol = closest.Protocol
	} else {
		res.Valid = false
		if c := r.Completions(text); len(c) == 1 {
			res.Suggestion = c[0][len(text):]
			res.HasSuggestion = true
		}
	}
	res.Supported = r.reg.Supported(res.Protocol)
	return res
}

// Completions returns the distinct version names and aliases
// starting with text, in registry order.
func (r *Resolver) Completions(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		if strings.HasPrefix(s, text) {
			out = append(out, s)
		}
	}
	for _, v := range r.reg.Protocols() {
		for _, alias := range v.Aliases(r.sep) {
			add(alias)
		}
		add(v.Name())
	}
	return out
}

// DisplayText returns the text to show for p: its version
// name if registered, otherwise the protocol number.
func DisplayText(reg registry.Registry, p proto.Protocol) string {
	if v, ok := reg.Protocol(p); ok {
		return v.Name()
	}
	return p.String()
}
