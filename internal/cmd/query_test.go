package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/osinfo/internal/errors"
)

func TestQuery_Table(t *testing.T) {
	out, _, err := executeCatalog(t, "query", "os")
	require.NoError(t, err)

	for _, want := range []string{"short-id", "version", "fedora10", "Fedora 11", "centos6", "rhel6"} {
		assert.Contains(t, out, want)
	}
	// Less common properties are only shown when requested.
	for _, hidden := range []string{"release-date", "codename", "distro"} {
		assert.NotContains(t, out, hidden)
	}
	// Default sort is the first label, short-id.
	assert.Less(t, strings.Index(out, "centos6"), strings.Index(out, "fedora10"))
	assert.Less(t, strings.Index(out, "fedora11"), strings.Index(out, "rhel6"))
}

func TestQuery_DefaultColumns(t *testing.T) {
	tests := []struct {
		kind string
		want []string
	}{
		{kind: "os", want: []string{"short-id", "name", "version", "id"}},
		{kind: "platform", want: []string{"short-id", "name", "version", "id"}},
		{kind: "device", want: []string{"vendor", "product", "class", "bus-type", "id"}},
		{kind: "deployment", want: []string{"id", "os", "platform"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			kind, err := lookupKind(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind.columns)
			for _, col := range kind.columns {
				assert.Contains(t, kind.labels, col)
			}
		})
	}
}

func TestQuery_FieldsShowHiddenColumns(t *testing.T) {
	out, _, err := executeCatalog(t, "query", "os", "short-id=fedora11", "--fields", "short-id,release-date")
	require.NoError(t, err)
	assert.Contains(t, out, "release-date")
	assert.Contains(t, out, "fedora11")
}

func TestQuery_Structured(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []map[string]any
	}{
		{
			name: "conditions and fields",
			args: []string{"query", "os", "distro=fedora", "--fields", "short-id,name"},
			want: []map[string]any{
				{"short-id": "fedora10", "name": "Fedora 10"},
				{"short-id": "fedora11", "name": "Fedora 11"},
			},
		},
		{
			name: "sort by other property",
			args: []string{"query", "device", "class=net", "--sort", "vendor-id", "--fields", "vendor-id,name"},
			want: []map[string]any{
				{"vendor-id": "10ec", "name": "rtl8139"},
				{"vendor-id": "1af4", "name": "virtio-net"},
				{"vendor-id": "8086", "name": "e1000"},
			},
		},
		{
			name: "platform by short id",
			args: []string{"query", "platform", "short-id=kvm12", "--fields", "version"},
			want: []map[string]any{{"version": "0.12.0"}},
		},
		{
			name: "deployments",
			args: []string{"query", "deployment", "os=" + fedora11ID},
			want: []map[string]any{{
				"id":       "http://deployment.example.org/fedora-11/qemu-kvm-0.11.0",
				"os":       fedora11ID,
				"platform": qemuKVMID,
			}},
		},
		{
			name: "no match",
			args: []string{"query", "device", "class=video"},
			want: []map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCatalog(t, append(tt.args, "-o", "json")...)
			require.NoError(t, err)

			var got []map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCode int
	}{
		{
			name:     "unknown type",
			args:     []string{"query", "vm"},
			wantErr:  "unknown type vm",
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "bad condition",
			args:     []string{"query", "os", "fedora"},
			wantErr:  "syntax error in condition, expecting KEY=VALUE",
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "unknown property",
			args:     []string{"query", "device", "colour=red"},
			wantErr:  "unknown property name colour",
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "unknown sort",
			args:     []string{"query", "os", "--sort", "class"},
			wantErr:  "unknown property name class",
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

func TestQuery_RequiresType(t *testing.T) {
	_, _, err := executeCatalog(t, "query")
	require.Error(t, err)
}
