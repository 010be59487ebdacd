package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFlagsFromEnvVariables(t *testing.T) {
	t.Run("override flag with env var", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		got := fs.String("client-id", "default", "")
		t.Setenv("TOKENAUTH_CLIENT_ID", "overridden")
		SetFlagsFromEnvVariables(fs)
		require.NoError(t, fs.Parse(nil))
		assert.Equal(t, "overridden", *got)
	})

	t.Run("unset env var leaves default", func(t *testing.T) {
		fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
		got := fs.String("client-id", "default", "")
		SetFlagsFromEnvVariables(fs)
		require.NoError(t, fs.Parse(nil))
		assert.Equal(t, "default", *got)
	})
}
