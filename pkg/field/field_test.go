package field

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/robinbraemer/event"
	"github.com/stretchr/testify/require"

	"go.minekube.com/vselect/pkg/edition/java/proto/version"
	"go.minekube.com/vselect/pkg/feature"
	"go.minekube.com/vselect/pkg/proto"
	"go.minekube.com/vselect/pkg/registry"
	"go.minekube.com/vselect/pkg/resolve"
	"go.minekube.com/vselect/pkg/session"
	"go.minekube.com/vselect/pkg/util/errs"
)

func newField(t *testing.T, initial proto.Protocol, mgr event.Manager) (*Field, *session.Session, *feature.Flag) {
	t.Helper()
	reg, err := registry.New(version.Versions, version.Minecraft_1_14_4.Protocol,
		registry.WithEdges(registry.Edge{From: 498, To: 490}))
	require.NoError(t, err)
	s := session.New(initial, mgr)
	flag := feature.NewFlag(filepath.Join(t.TempDir(), "ViaFabric"))
	f, err := New(Options{
		Resolver: resolve.New(reg),
		Session:  s,
		Flag:     flag,
		Event:    mgr,
	})
	require.NoError(t, err)
	return f, s, flag
}

func TestNew_missingOptions(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestNew_initialText(t *testing.T) {
	f, s, _ := newField(t, 490, nil)
	require.Equal(t, "1.14.3", f.Text())
	require.Equal(t, proto.Protocol(490), s.Protocol())
	require.Equal(t, resolve.ColorSupported, f.Color())

	f, s, _ = newField(t, 4242, nil)
	require.Equal(t, "4242", f.Text())
	require.Equal(t, proto.Protocol(4242), s.Protocol())
	require.Equal(t, resolve.ColorUnsupported, f.Color())
}

func TestSetText(t *testing.T) {
	mgr := event.New()
	var changes []proto.Protocol
	event.Subscribe(mgr, 0, func(e *session.ProtocolChangedEvent) {
		changes = append(changes, e.New)
	})
	var texts []string
	event.Subscribe(mgr, 0, func(e *ChangedEvent) {
		texts = append(texts, e.Text)
	})

	f, s, _ := newField(t, 498, mgr)

	f.SetText("1.14.3")
	require.Equal(t, proto.Protocol(490), s.Protocol())
	require.Equal(t, resolve.ColorSupported, f.Color())
	_, ok := f.Suggestion()
	require.False(t, ok)

	// editing towards another version keeps the last valid one
	f.SetText("1.7.1")
	require.Equal(t, proto.Protocol(490), s.Protocol())
	require.Equal(t, resolve.ColorInvalid, f.Color())
	sug, ok := f.Suggestion()
	require.True(t, ok)
	require.Equal(t, "0", sug)

	// 1.7.10 is only reachable via the chain, edges replace it
	f.SetText("1.7.10")
	require.Equal(t, version.Minecraft_1_7_6.Protocol, s.Protocol())
	require.Equal(t, resolve.ColorUnsupported, f.Color())

	f.SetText("498")
	require.Equal(t, "498", f.Text())
	require.Equal(t, resolve.ColorSupported, f.Color())

	mgr.Wait()
	require.Equal(t, []proto.Protocol{490, 5, 498}, changes)
	require.Equal(t, []string{"1.14.4", "1.14.3", "1.7.1", "1.7.10", "498"}, texts)
}

func TestSetText_numericRange(t *testing.T) {
	f, s, _ := newField(t, 498, nil)

	res := f.SetText("2147483647")
	require.Equal(t, proto.Protocol(2147483647), s.Protocol())
	require.Equal(t, res.Protocol, s.Protocol())

	for _, text := range []string{"2147483648", "-2147483649", "4294967794"} {
		res := f.SetText(text)
		require.False(t, res.Valid, text)
		require.Equal(t, proto.Protocol(2147483647), s.Protocol(), text)
		require.Equal(t, resolve.ColorInvalid, f.Color(), text)
	}
}

func TestSetText_sharedSession(t *testing.T) {
	a, s, flag := newField(t, 498, nil)
	b, err := New(Options{Resolver: a.resolver, Session: s, Flag: flag})
	require.NoError(t, err)

	texts := []string{"1.14.3", "1.8.9", "340", "1.7.1", "47"}
	var wg sync.WaitGroup
	for _, f := range []*Field{a, b} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				f.SetText(texts[i%len(texts)])
			}
		}()
	}
	wg.Wait()

	// the last writer's result is what the session advertises
	last := b.SetText("1.12.2")
	require.Equal(t, last.Protocol, s.Protocol())
	require.Equal(t, proto.Protocol(340), a.SetText("1.7.1").Protocol)
	require.Equal(t, proto.Protocol(340), s.Protocol())
}

func TestSetText_handlerReadsField(t *testing.T) {
	mgr := event.New()
	var f *Field
	var seen []string
	event.Subscribe(mgr, 0, func(e *session.ProtocolChangedEvent) {
		if f != nil {
			seen = append(seen, f.Text())
		}
	})
	f, _, _ = newField(t, 498, mgr)

	f.SetText("1.14.3")
	mgr.Wait()
	require.Len(t, seen, 1)
}

func TestEnable(t *testing.T) {
	f, _, flag := newField(t, 498, nil)
	require.False(t, f.Visible())
	require.True(t, f.ButtonVisible())

	declined := feature.ConfirmFunc(func(context.Context, feature.Prompt) (bool, error) { return false, nil })
	ok, err := f.Enable(context.Background(), declined)
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, f.Visible())

	failing := feature.ConfirmFunc(func(context.Context, feature.Prompt) (bool, error) {
		return false, errors.New("closed")
	})
	_, err = f.Enable(context.Background(), failing)
	require.Error(t, err)
	require.False(t, errs.IsNonFatal(err))

	ok, err = f.Enable(context.Background(), feature.Always)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, f.Visible())
	require.False(t, f.ButtonVisible())
	require.True(t, flag.Enabled())
}

func TestEnable_markerFailure(t *testing.T) {
	reg, err := registry.New(version.Versions, 498)
	require.NoError(t, err)
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, nil, 0o644))

	f, err := New(Options{
		Resolver: resolve.New(reg),
		Session:  session.New(498, nil),
		Flag:     feature.NewFlag(parent),
	})
	require.NoError(t, err)

	ok, err := f.Enable(context.Background(), feature.Always)
	require.False(t, ok)
	require.Error(t, err)
	require.True(t, errs.IsNonFatal(err))
	require.False(t, f.Visible())
}
