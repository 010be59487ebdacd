package logr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var got bytes.Buffer
		logger, err := newWithWriter(&Config{Format: "json"}, &got)
		require.NoError(t, err)

		logger.Info("hello", "key", "value")

		assert.Contains(t, got.String(), `"msg":"hello"`)
		assert.Contains(t, got.String(), `"key":"value"`)
	})

	t.Run("verbosity gates lower levels", func(t *testing.T) {
		var got bytes.Buffer
		logger, err := newWithWriter(&Config{Format: "text"}, &got)
		require.NoError(t, err)

		logger.V(2).Info("too detailed")
		assert.Empty(t, got.String())

		logger.Info("important")
		assert.Contains(t, got.String(), "important")
	})

	t.Run("unrecognised format", func(t *testing.T) {
		_, err := New(&Config{Format: "yaml"})
		assert.Error(t, err)
	})
}
