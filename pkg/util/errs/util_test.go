package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNonFatal(t *testing.T) {
	require.Nil(t, WrapNonFatal(nil))

	err := WrapNonFatal(fmt.Errorf("create marker: %w", fs.ErrPermission))
	require.True(t, IsNonFatal(err))
	require.True(t, errors.Is(err, fs.ErrPermission))
	require.Equal(t, "create marker: permission denied", err.Error())

	require.True(t, IsNonFatal(fmt.Errorf("outer: %w", WrapNonFatal(errors.New("inner")))))
	require.False(t, IsNonFatal(errors.New("plain")))
}
