package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/osinfo/internal/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantDevice    string
		wantName      string
		wantDriver    string
		wantSupported bool
	}{
		{
			name:          "default class is net",
			args:          []string{"resolve", "fedora11", "kvm"},
			wantDevice:    rtl8139ID,
			wantName:      "rtl8139",
			wantDriver:    "8139cp",
			wantSupported: true,
		},
		{
			name:          "by id and class",
			args:          []string{"resolve", fedora11ID, qemuKVMID, "--class", "audio"},
			wantDevice:    "http://pci-ids.ucw.cz/read/PC/1274/5000",
			wantName:      "es1370",
			wantDriver:    "ac97",
			wantSupported: true,
		},
		{
			name:          "device conditions",
			args:          []string{"resolve", "fedora11", "kvm", "vendor-id=1af4"},
			wantDevice:    virtioID,
			wantName:      "virtio-net",
			wantDriver:    "virtio-net",
			wantSupported: false,
		},
		{
			name:          "legacy nested deployment",
			args:          []string{"resolve", "rhel6", "xen"},
			wantDevice:    rtl8139ID,
			wantName:      "rtl8139",
			wantDriver:    "8139cp",
			wantSupported: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCatalog(t, append(tt.args, "-o", "json")...)
			require.NoError(t, err)

			var res Resolution
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, tt.wantDevice, res.Device)
			assert.Equal(t, tt.wantName, res.DeviceName)
			assert.Equal(t, tt.wantDriver, res.Driver)
			assert.Equal(t, tt.wantSupported, res.Supported)
		})
	}
}

func TestResolve_CustomParams(t *testing.T) {
	out, _, err := executeCatalog(t, "resolve", "fedora11", "kvm", "-o", "json")
	require.NoError(t, err)

	var res Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Fedora 11", res.OSName)
	assert.Equal(t, "KVM", res.PlatformName)
	assert.Equal(t, map[string][]string{
		"x-animal": {"cat", "dog", "mouse"},
		"x-fruit":  {"apple"},
	}, res.Custom)
}

func TestResolve_Table(t *testing.T) {
	out, _, err := executeCatalog(t, "resolve", "fedora11", "kvm")
	require.NoError(t, err)

	assert.Contains(t, out, "Fedora 11")
	assert.Contains(t, out, "x-fruit:")
	assert.Contains(t, out, "cat, dog, mouse")
	assert.Contains(t, out, "KVM")
	assert.Contains(t, out, "rtl8139")
	assert.Contains(t, out, "8139cp")
	assert.NotContains(t, out, "unsupported")
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCode int
	}{
		{
			name:     "unknown os",
			args:     []string{"resolve", "beos", "kvm"},
			wantErr:  `no operating system with id or short id "beos"`,
			wantCode: oerrors.ExitNotFound,
		},
		{
			name:     "unknown platform",
			args:     []string{"resolve", "fedora11", "vmware"},
			wantErr:  `no platform with id or short id "vmware"`,
			wantCode: oerrors.ExitNotFound,
		},
		{
			name:     "no deployment",
			args:     []string{"resolve", "fedora10", "xen"},
			wantErr:  "no deployment of " + fedora10ID,
			wantCode: oerrors.ExitNotFound,
		},
		{
			name:     "no matching device",
			args:     []string{"resolve", "fedora11", "kvm", "--class", "video"},
			wantErr:  "has no device matching class=video",
			wantCode: oerrors.ExitNotFound,
		},
		{
			name:     "bad condition",
			args:     []string{"resolve", "fedora11", "kvm", "net"},
			wantErr:  "syntax error in condition, expecting KEY=VALUE",
			wantCode: oerrors.ExitValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCatalog(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.wantCode, oerrors.ExitCodeFromError(err))
		})
	}
}
