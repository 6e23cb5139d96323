package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorModeRejectsUnknownValue(t *testing.T) {
	_, err := ParseColorMode("rainbow")
	require.Error(t, err)
}

func TestParseColorModeAcceptsKnownValues(t *testing.T) {
	for _, v := range []string{"auto", "always", "never"} {
		mode, err := ParseColorMode(v)
		require.NoError(t, err)
		assert.Equal(t, ColorMode(v), mode)
	}
}

func TestResolveAliasFindsDeprecatedName(t *testing.T) {
	repl, ok := ResolveAlias("zombie")
	require.True(t, ok)
	assert.Equal(t, "dead", repl)

	_, ok = ResolveAlias("dead")
	assert.False(t, ok)
}
