package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/vselect/pkg/edition/java/proto/version"
	"go.minekube.com/vselect/pkg/proto"
)

func v(p proto.Protocol, names ...string) *proto.Version {
	return &proto.Version{Protocol: p, Names: names}
}

func TestNew_validates(t *testing.T) {
	_, err := New([]*proto.Version{v(1, "a"), v(1, "b")}, 1)
	require.Error(t, err)

	_, err = New([]*proto.Version{v(1, "a")}, 2)
	require.Error(t, err)

	_, err = New([]*proto.Version{v(1, "a"), v(2, "b")}, 1, WithEdges(Edge{From: 1, To: 3}))
	require.Error(t, err)
}

func TestStatic_lookup(t *testing.T) {
	r, err := New([]*proto.Version{v(498, "1.14.4"), v(490, "1.14.3")}, 498)
	require.NoError(t, err)

	require.True(t, r.IsRegistered(490))
	require.False(t, r.IsRegistered(491))

	got, ok := r.Protocol(498)
	require.True(t, ok)
	require.Equal(t, "1.14.4", got.Name())

	// sorted by protocol
	require.Equal(t, proto.Protocol(490), r.Protocols()[0].Protocol)
	require.Equal(t, proto.Protocol(498), r.Native())
}

func TestStatic_Path_chain(t *testing.T) {
	r, err := New([]*proto.Version{v(1, "a"), v(2, "b"), v(3, "c"), v(4, "d")}, 2)
	require.NoError(t, err)

	require.Equal(t, []proto.Protocol{3, 4}, r.Path(2, 4))
	require.Equal(t, []proto.Protocol{1}, r.Path(2, 1))
	require.NotNil(t, r.Path(2, 2))
	require.Empty(t, r.Path(2, 2))
	require.Nil(t, r.Path(2, 9))
	require.Nil(t, r.Path(9, 2))
}

func TestStatic_Path_edges(t *testing.T) {
	r, err := New([]*proto.Version{v(1, "a"), v(2, "b"), v(3, "c"), v(4, "d")}, 1,
		WithEdges(Edge{From: 1, To: 3}, Edge{From: 3, To: 4}))
	require.NoError(t, err)

	require.Equal(t, []proto.Protocol{3, 4}, r.Path(1, 4))
	require.Equal(t, []proto.Protocol{3, 1}, r.Path(4, 1), "edges are bidirectional")
	require.Nil(t, r.Path(1, 2), "2 is not linked without chain")

	assert.True(t, r.Supported(1))
	assert.True(t, r.Supported(4))
	assert.False(t, r.Supported(2))
	assert.False(t, r.Supported(proto.Unknown))
}

func TestStatic_Path_chainAndEdges(t *testing.T) {
	r, err := New([]*proto.Version{v(1, "a"), v(2, "b"), v(3, "c"), v(4, "d")}, 1,
		WithChain(true), WithEdges(Edge{From: 1, To: 4}))
	require.NoError(t, err)
	require.Equal(t, []proto.Protocol{4}, r.Path(1, 4), "shortest path wins")
	require.Equal(t, []proto.Protocol{2}, r.Path(1, 2))
}

func TestStatic_Path_cached(t *testing.T) {
	r, err := New([]*proto.Version{v(1, "a"), v(2, "b")}, 1, WithPathCacheTTL(time.Hour))
	require.NoError(t, err)

	p := r.Path(1, 2)
	require.Equal(t, []proto.Protocol{2}, p)
	p[0] = 99 // callers get a copy
	require.Equal(t, []proto.Protocol{2}, r.Path(1, 2))
	require.Equal(t, 1, r.paths.Len())
}

func TestStatic_Supported_exampleCatalog(t *testing.T) {
	r, err := New(version.Versions, version.Minecraft_1_14_4.Protocol)
	require.NoError(t, err)

	require.True(t, r.Supported(version.Minecraft_1_14_3.Protocol))
	require.True(t, r.Supported(version.Minecraft_1_7_2.Protocol))
	require.False(t, r.Supported(12345))
}

func TestStatic_withoutChain(t *testing.T) {
	r, err := New([]*proto.Version{v(1, "a"), v(2, "b")}, 1, WithChain(false))
	require.NoError(t, err)
	require.True(t, r.Supported(1))
	require.False(t, r.Supported(2))
}
