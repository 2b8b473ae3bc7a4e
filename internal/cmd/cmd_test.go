package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iconfig "github.com/opmodel/osinfo/internal/config"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/testutil"
)

const (
	fedora10ID = "http://fedoraproject.org/fedora-10"
	fedora11ID = "http://fedoraproject.org/fedora-11"
	qemuKVMID  = "http://qemu.org/qemu-kvm-0.11.0"
	rtl8139ID  = "http://pci-ids.ucw.cz/read/PC/10ec/8139"
	virtioID   = "http://pci-ids.ucw.cz/read/PC/1af4/1000"
)

// isolate points configuration at an empty temp directory and clears the
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := testutil.TempDir(t)
	t.Setenv(iconfig.EnvConfig, filepath.Join(dir, "config.yaml"))
	t.Setenv(iconfig.EnvDataDirs, "")
	t.Setenv(iconfig.EnvOutput, "")
	t.Setenv(iconfig.EnvTimestamps, "")
	return dir
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	isolate(t)

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// executeCatalog runs args against the sample catalog.
func executeCatalog(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return execute(t, append([]string{"--data-dir", testutil.CatalogPath(t)}, args...)...)
}

func TestNewRootCmd_Flags(t *testing.T) {
	root := NewRootCmd()

	dataDir := root.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, dataDir)
	assert.Equal(t, "stringArray", dataDir.Value.Type())

	out := root.PersistentFlags().Lookup("output")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
	assert.Equal(t, "", out.DefValue)

	verbose := root.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("timestamps"))

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"query", "unique", "resolve", "detect", "db", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_InvalidOutput(t *testing.T) {
	_, _, err := executeCatalog(t, "-o", "xml", "db", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid output format "xml"`)
}

func TestRootCmd_OutputFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(iconfig.EnvOutput, "json")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--data-dir", testutil.CatalogPath(t), "db", "stats"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"oses": 4`)
}

func TestRootCmd_BrokenConfigFile(t *testing.T) {
	dir := isolate(t)
	path := testutil.WriteFile(t, dir, "broken.yaml", "output: [json\n")

	run := func(args ...string) error {
		root := NewRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(append([]string{"--config", path}, args...))
		return root.Execute()
	}

	assert.Error(t, run("--data-dir", testutil.CatalogPath(t), "db", "stats"))

	// config commands still run so the file can be repaired.
	err := run("config", "vet")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrParse)
	assert.NoError(t, run("config", "init", "--force"))
	assert.NoError(t, run("config", "vet"))
}
