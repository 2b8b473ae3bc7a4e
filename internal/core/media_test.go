package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedia_Matches(t *testing.T) {
	catalog := NewMedia("fedora-11-dvd", "x86_64")
	catalog.SetParam(PropMediaVolumeID, "^Fedora 11 x86_64")
	catalog.SetParam(PropMediaSystemID, "LINUX")

	tests := []struct {
		name     string
		arch     string
		volumeID string
		systemID string
		want     bool
	}{
		{"exact", "x86_64", "Fedora 11 x86_64 DVD", "LINUX", true},
		{"unknown arch", "", "Fedora 11 x86_64 DVD", "LINUX", true},
		{"other arch", "i686", "Fedora 11 x86_64 DVD", "LINUX", false},
		{"volume mismatch", "x86_64", "Fedora 12 x86_64 DVD", "LINUX", false},
		{"system mismatch", "x86_64", "Fedora 11 x86_64 DVD", "WIN32", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probed := NewMedia("probed", tt.arch)
			probed.SetParam(PropMediaVolumeID, tt.volumeID)
			probed.SetParam(PropMediaSystemID, tt.systemID)
			assert.Equal(t, tt.want, catalog.Matches(probed))
		})
	}
}

func TestMedia_PatternsCompiledOnce(t *testing.T) {
	catalog := NewMedia("fedora-11-dvd", "x86_64")
	catalog.SetParam(PropMediaVolumeID, "^Fedora 11")

	probed := NewMedia("probed", "x86_64")
	probed.SetParam(PropMediaVolumeID, "Fedora 11 x86_64 DVD")

	require.True(t, catalog.Matches(probed))
	first := catalog.patterns.compiled["^Fedora 11"]
	require.NotNil(t, first)

	require.True(t, catalog.Matches(probed))
	assert.Same(t, first, catalog.patterns.compiled["^Fedora 11"])
	assert.Len(t, catalog.patterns.compiled, 1)

	// A changed identifier compiles its new pattern.
	catalog.SetParam(PropMediaVolumeID, "^Fedora 1[01]")
	assert.True(t, catalog.Matches(probed))
	assert.Len(t, catalog.patterns.compiled, 2)
}

func TestMedia_InvalidPatternNeverMatches(t *testing.T) {
	catalog := NewMedia("broken", "x86_64")
	catalog.SetParam(PropMediaVolumeID, "Fedora ([")

	probed := NewMedia("probed", "x86_64")
	probed.SetParam(PropMediaVolumeID, "Fedora ([")

	assert.False(t, catalog.Matches(probed))
	assert.False(t, catalog.Matches(probed))

	re, ok := catalog.patterns.compiled["Fedora (["]
	assert.True(t, ok)
	assert.Nil(t, re)
}

func TestTree_InvalidPatternNeverMatches(t *testing.T) {
	catalog := NewTree("broken", "x86_64")
	catalog.SetParam(PropTreeTreeinfoFamily, "*Fedora")

	probed := NewTree("probed", "x86_64")
	probed.SetParam(PropTreeTreeinfoFamily, "Fedora")

	assert.False(t, catalog.Matches(probed))
}

func TestMedia_NoIdentifiersNeverMatches(t *testing.T) {
	catalog := NewMedia("bare", ArchAll)
	probed := NewMedia("probed", "x86_64")
	probed.SetParam(PropMediaVolumeID, "anything")

	assert.False(t, catalog.Matches(probed))
}

func TestMedia_Defaults(t *testing.T) {
	m := NewMedia("m", "")

	assert.False(t, m.Live())
	assert.True(t, m.Installer())
	assert.Equal(t, int64(1), m.InstallerReboots())
	assert.Nil(t, m.OS())
}

func TestDB_IdentifyMedia(t *testing.T) {
	db := newDemoDB(t)

	dvd := NewMedia("http://fedoraproject.org/fedora-11/dvd", "x86_64")
	dvd.SetParam(PropMediaVolumeID, "^Fedora 11 x86_64")
	db.OS(fedora11ID).AddMedia(dvd)

	probed := NewMedia("probed", "x86_64")
	probed.SetParam(PropMediaVolumeID, "Fedora 11 x86_64 DVD")

	os, media := db.IdentifyMedia(probed)
	require.NotNil(t, os)
	assert.Equal(t, fedora11ID, os.ID())
	assert.Equal(t, dvd.ID(), media.ID())
	assert.Same(t, os, media.OS())

	probed.SetParam(PropMediaVolumeID, "Ubuntu 22.04")
	os, media = db.IdentifyMedia(probed)
	assert.Nil(t, os)
	assert.Nil(t, media)
}

func TestDB_IdentifyTree(t *testing.T) {
	db := newDemoDB(t)

	tree := NewTree("http://fedoraproject.org/fedora-11/tree", "x86_64")
	tree.SetParam(PropTreeTreeinfoFamily, "Fedora")
	tree.SetParam(PropTreeTreeinfoVersion, "^11$")
	db.OS(fedora11ID).AddTree(tree)

	probed := NewTree("probed", "x86_64")
	probed.SetParam(PropTreeTreeinfoFamily, "Fedora")
	probed.SetParam(PropTreeTreeinfoVersion, "11")

	os, got := db.IdentifyTree(probed)
	require.NotNil(t, os)
	assert.Equal(t, fedora11ID, os.ID())
	assert.Equal(t, tree.ID(), got.ID())

	probed.SetParam(PropTreeTreeinfoVersion, "12")
	os, _ = db.IdentifyTree(probed)
	assert.Nil(t, os)
}

func TestDatamap_Lookup(t *testing.T) {
	m := NewDatamap("http://x.org/x11-keyboard")
	m.Insert("us", "en-US")
	m.Insert("gb", "en-GB")
	m.Insert("uk", "en-GB")

	got, ok := m.Lookup("gb")
	require.True(t, ok)
	assert.Equal(t, "en-GB", got)

	got, ok = m.ReverseLookup("en-GB")
	require.True(t, ok)
	assert.Equal(t, "gb", got)

	_, ok = m.Lookup("fr")
	assert.False(t, ok)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, [2]string{"uk", "en-GB"}, m.Entries()[2])
}

func TestDeviceDriver(t *testing.T) {
	d := NewDeviceDriver("virtio-win")
	d.SetParam(PropDriverArchitecture, "x86_64")
	d.AddParam(PropDriverFile, "viostor.inf")
	d.AddParam(PropDriverFile, "viostor.sys")
	d.AddDevice(NewDevice("virtio-block"))

	assert.Equal(t, "x86_64", d.Architecture())
	assert.Equal(t, []string{"viostor.inf", "viostor.sys"}, d.Files())
	assert.False(t, d.PreInstallable())
	assert.True(t, d.Signed())
	assert.Equal(t, int64(50), d.Priority())
	assert.Equal(t, 1, d.Devices().Len())
}
