package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion_Name(t *testing.T) {
	v := &Version{Protocol: 5, Names: []string{"1.7.6", "1.7.7", "1.7.10"}}
	require.Equal(t, "1.7.6-1.7.10", v.Name())
	require.Equal(t, "1.7.6-1.7.10", v.String())
	require.Equal(t, []string{"1.7.6", "1.7.10"}, v.Aliases(DefaultAliasSeparator))

	single := &Version{Protocol: 498, Names: []string{"1.14.4"}}
	require.Equal(t, "1.14.4", single.Name())
	require.Equal(t, []string{"1.14.4"}, single.Aliases(DefaultAliasSeparator))
	require.Equal(t, []string{"1.14.4"}, single.Aliases(""))

	require.Equal(t, "", (&Version{}).Name())

	trailing := &Version{Protocol: 1, Names: []string{"1.0-"}}
	require.Equal(t, []string{"1.0"}, trailing.Aliases(DefaultAliasSeparator))
	require.Empty(t, (&Version{Names: []string{"-"}}).Aliases(DefaultAliasSeparator))
}

func TestProtocol(t *testing.T) {
	require.Equal(t, "498", Protocol(498).String())
	require.True(t, Unknown.Unknown())
	require.False(t, Protocol(498).Unknown())
}
