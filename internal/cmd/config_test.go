package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iconfig "github.com/opmodel/osinfo/internal/config"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/testutil"
)

// runConfig runs a config subcommand against the config file at path.
func runConfig(t *testing.T, path string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", path, "config"}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	out, _, err := runConfig(t, path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file created: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# osinfo configuration")
	assert.Contains(t, string(data), "output: table")

	_, _, err = runConfig(t, path, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))

	_, _, err = runConfig(t, path, "init", "--force")
	assert.NoError(t, err)
}

func TestConfigInit_UsesEnvPath(t *testing.T) {
	dir := isolate(t)

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init"})
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.Equal(t, filepath.Join(dir, "config.yaml"), os.Getenv(iconfig.EnvConfig))
}

func TestConfigVet(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name     string
		content  string
		wantOut  string
		wantErr  string
		wantCode int
	}{
		{
			name:    "valid",
			content: "dataDirs: [/srv/osinfo]\noutput: json\nlog:\n  timestamps: false\n",
			wantOut: "Config file is valid",
		},
		{
			name:     "invalid output",
			content:  "output: xml\n",
			wantErr:  "output",
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "unknown key",
			content:  "registry: example.org\n",
			wantErr:  "registry",
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "whitespace data dir",
			content:  "dataDirs: ['  ']\n",
			wantErr:  "must not be whitespace only",
			wantCode: oerrors.ExitValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, dir, tt.name+".yaml", tt.content)

			out, stderr, err := runConfig(t, path, "vet")
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Contains(t, out, tt.wantOut)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, oerrors.ExitCodeFromError(err))
			assert.Contains(t, stderr, "config validation failed")
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestConfigVet_MissingFile(t *testing.T) {
	dir := isolate(t)

	_, _, err := runConfig(t, filepath.Join(dir, "absent.yaml"), "vet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
	assert.Contains(t, err.Error(), "osinfo config init")
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}
