package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	for value, want := range map[string]bool{"1": true, "true": true, "True": true, "0": false, "": false, "yes": false} {
		t.Setenv("JELLY_DEBUG", value)
		assert.Equal(t, want, debugEnabled(), "JELLY_DEBUG=%q", value)
	}
}

func TestRootFlagsDefaults(t *testing.T) {
	assert.Equal(t, "config.json", RootCmd.Flags().Lookup("config").DefValue)
	assert.Equal(t, "info", RootCmd.Flags().Lookup("log-level").DefValue)
	assert.NotNil(t, RootCmd.Flags().ShorthandLookup("v"))
}
