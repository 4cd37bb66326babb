// Package session owns the protocol version a client advertises
// when connecting through the translation layer.
package session

import (
	"github.com/robinbraemer/event"
	"go.uber.org/atomic"

	"go.minekube.com/vselect/pkg/proto"
)

// Session holds the selected client-side protocol.
//
// Version fields write it through Update, possibly several fields at once
// around a config reload. Connection code reads Protocol when building the
// handshake and may do so from any goroutine.
type Session struct {
	protocol *atomic.Int64
	event    event.Manager
}

// New returns a new Session starting at initial.
// The event manager may be nil.
func New(initial proto.Protocol, mgr event.Manager) *Session {
	if mgr == nil {
		mgr = event.Nop
	}
	return &Session{
		protocol: atomic.NewInt64(int64(initial)),
		event:    mgr,
	}
}

// Protocol returns the selected protocol.
func (s *Session) Protocol() proto.Protocol {
	return proto.Protocol(s.protocol.Load())
}

// Update atomically replaces the selected protocol with fn(prior) and fires
// a ProtocolChangedEvent if it changed. fn may be called more than once
// when racing with other writers and must not call back into the Session.
func (s *Session) Update(fn func(prior proto.Protocol) proto.Protocol) (changed bool) {
	for {
		old := s.protocol.Load()
		p := fn(proto.Protocol(old))
		if !s.protocol.CompareAndSwap(old, int64(p)) {
			continue
		}
		if proto.Protocol(old) == p {
			return false
		}
		s.event.Fire(&ProtocolChangedEvent{Old: proto.Protocol(old), New: p})
		return true
	}
}

// ProtocolChangedEvent is fired when the selected client-side protocol changes.
type ProtocolChangedEvent struct {
	Old, New proto.Protocol
}
