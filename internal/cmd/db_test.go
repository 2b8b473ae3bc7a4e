package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/osinfo/internal/catalog"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/testutil"
)

func TestDBValidate(t *testing.T) {
	out, _, err := executeCatalog(t, "db", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is valid: 4 operating systems, 3 platforms, 4 devices, 2 deployments")
}

func TestDBValidate_Failure(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.WriteFile(t, dir, "os.xml", testutil.Doc(`
<os id="http://example.org/os">
  <name>Broken</name>
  <release-date>2009-6-9</release-date>
  <devices><device id="http://example.org/missing"/></devices>
</os>`))

	_, stderr, err := execute(t, "--data-dir", dir, "db", "validate")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Printed)

	assert.Contains(t, stderr, "catalog validation failed")
	assert.Contains(t, stderr, "Source: "+dir)
	assert.Contains(t, stderr, "references undefined device http://example.org/missing")
	assert.Contains(t, stderr, "oses[http://example.org/os].params")
}

func TestDBExport(t *testing.T) {
	out, _, err := executeCatalog(t, "db", "export", "-o", "json")
	require.NoError(t, err)

	var doc catalog.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.OSes, 4)
	assert.Len(t, doc.Devices, 4)
	assert.Len(t, doc.Datamaps, 1)
}

func TestDBExport_File(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "out", "catalog.yaml")

	out, _, err := executeCatalog(t, "db", "export", "--file", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	doc, err := catalog.ReadDocument(path)
	require.NoError(t, err)
	assert.Len(t, doc.Platforms, 3)
}

func TestDBDiff(t *testing.T) {
	exported := filepath.Join(testutil.TempDir(t), "catalog.yaml")
	_, _, err := executeCatalog(t, "db", "export", "--file", exported)
	require.NoError(t, err)

	t.Run("identical", func(t *testing.T) {
		out, _, err := execute(t, "db", "diff", testutil.CatalogPath(t), exported, "--exit-code")
		require.NoError(t, err)
		assert.Contains(t, out, "No changes")
	})

	t.Run("changed", func(t *testing.T) {
		changed := testutil.CopyFixture(t, "catalog")
		testutil.WriteFile(t, changed, "extra.xml", testutil.Doc(
			`<device id="http://example.org/new"><class>video</class></device>`))

		out, _, err := execute(t, "db", "diff", exported, changed, "-o", "json")
		require.NoError(t, err)

		var result catalog.DiffResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, []string{"device/http://example.org/new"}, result.Added)
		assert.Empty(t, result.Removed)
	})

	t.Run("exit code", func(t *testing.T) {
		changed := testutil.CopyFixture(t, "catalog")
		testutil.WriteFile(t, changed, "extra.xml", testutil.Doc(
			`<device id="http://example.org/new"><class>video</class></device>`))

		out, _, err := execute(t, "db", "diff", exported, changed, "--exit-code")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))
		assert.Contains(t, out, "1 added")
	})
}

func TestDBStats(t *testing.T) {
	out, _, err := executeCatalog(t, "db", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "operating systems")
	assert.Contains(t, out, "deployments")

	out, _, err = executeCatalog(t, "db", "stats", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "oses: 4")
	assert.Contains(t, out, "media: 2")
	assert.Contains(t, out, "trees: 1")
}
