package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFlags(t *testing.T) {
	globals := &Globals{Format: "text", Quiet: true, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.Error(t, validateFlags(globals, 0, 6))

	globals = &Globals{Format: "ndjson", Quiet: true, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.NoError(t, validateFlags(globals, 0, 6))
	require.NoError(t, validateFlags(globals, 6, 6))

	err := validateFlags(globals, 7, 6)
	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "INVALID_FLAGS", cmdErr.Code)

	require.Error(t, validateFlags(globals, -1, 6))
}
