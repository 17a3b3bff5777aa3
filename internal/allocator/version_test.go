package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionIsValidSemver(t *testing.T) {
	v := Version()
	require.Equal(t, uint64(1), v.Major())
}

func TestCompatibleWith(t *testing.T) {
	ok, err := CompatibleWith(">= 1.0.0, < 2.0.0")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = CompatibleWith(">= 2.0.0")
	require.NoError(t, err)
	require.False(t, ok)
}
