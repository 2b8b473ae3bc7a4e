package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/version"
)

func TestNewVersionCmd(t *testing.T) {
	c := NewVersionCmd(&cmdtypes.GlobalConfig{})

	assert.Equal(t, "version", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.NotEmpty(t, c.Long)
}

func TestVersionCmd_Execute(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "osinfo version "+version.Version)
	assert.Contains(t, out, version.CUESDKVersion)
}

func TestVersionCmd_JSON(t *testing.T) {
	out, _, err := execute(t, "version", "-o", "json")
	require.NoError(t, err)

	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Version, info.Version)
	assert.Equal(t, version.MetadataFormat, info.MetadataFormat)
}
