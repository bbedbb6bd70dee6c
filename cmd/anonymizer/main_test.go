package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/anonymizer/pkg/anonymizer"
)

func TestReadRunInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"request":{"headers":[{"name":"Authorization","value":"Bearer abc"}],"cookies":[]}}`), 0o600))

	req, err := readRunInput(nil, path)
	require.NoError(t, err)
	assert.Equal(t, []anonymizer.Entry{{Name: "Authorization", Value: "Bearer abc"}}, req.Headers)
}

func TestReadRunInputStdin(t *testing.T) {
	req, err := readRunInput(strings.NewReader(`{"request":{"cookies":[{"name":"sid","value":"1"}]}}`), "-")
	require.NoError(t, err)
	assert.Equal(t, []anonymizer.Entry{{Name: "sid", Value: "1"}}, req.Cookies)
}

func TestReadRunInputErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{name: "not JSON", input: `nope`, errMsg: "failed to parse input"},
		{name: "no request key", input: `{"headers":[]}`, errMsg: `no "request" object`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readRunInput(strings.NewReader(tt.input), "-")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := readRunInput(nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open input")
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "anonymizer version "))
}
