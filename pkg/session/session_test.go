package session

import (
	"sync"
	"testing"

	"github.com/robinbraemer/event"
	"github.com/stretchr/testify/require"

	"go.minekube.com/vselect/pkg/proto"
)

func to(p proto.Protocol) func(proto.Protocol) proto.Protocol {
	return func(proto.Protocol) proto.Protocol { return p }
}

func TestSession(t *testing.T) {
	mgr := event.New()
	var got []ProtocolChangedEvent
	event.Subscribe(mgr, 0, func(e *ProtocolChangedEvent) {
		got = append(got, *e)
	})

	s := New(498, mgr)
	require.Equal(t, proto.Protocol(498), s.Protocol())

	require.False(t, s.Update(to(498)))
	require.True(t, s.Update(to(490)))
	require.Equal(t, proto.Protocol(490), s.Protocol())

	mgr.Wait()
	require.Equal(t, []ProtocolChangedEvent{{Old: 498, New: 490}}, got)
}

func TestSession_nilManager(t *testing.T) {
	s := New(proto.Unknown, nil)
	require.True(t, s.Update(to(47)))
	require.Equal(t, proto.Protocol(47), s.Protocol())
}

func TestSession_fullWidth(t *testing.T) {
	s := New(498, nil)
	require.True(t, s.Update(to(4294967794)))
	require.Equal(t, proto.Protocol(4294967794), s.Protocol())
}

func TestSession_Update(t *testing.T) {
	s := New(0, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Update(func(prior proto.Protocol) proto.Protocol { return prior + 1 })
			}
		}()
	}
	wg.Wait()
	require.Equal(t, proto.Protocol(800), s.Protocol())

	require.False(t, s.Update(func(prior proto.Protocol) proto.Protocol { return prior }))
}
