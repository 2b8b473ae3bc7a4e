package cmdutil

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/osinfo/internal/errors"
)

var deviceLabels = []string{"vendor", "vendor-id", "name", "class", "id"}

func TestQueryFlags_AddTo(t *testing.T) {
	var qf QueryFlags
	cmd := &cobra.Command{Use: "test"}
	qf.AddTo(cmd)

	sortFlag := cmd.Flags().Lookup("sort")
	require.NotNil(t, sortFlag)
	assert.Equal(t, "s", sortFlag.Shorthand)
	assert.Equal(t, "", sortFlag.DefValue)

	fieldsFlag := cmd.Flags().Lookup("fields")
	require.NotNil(t, fieldsFlag)
	assert.Equal(t, "f", fieldsFlag.Shorthand)
	assert.Equal(t, "stringSlice", fieldsFlag.Value.Type())

	require.NoError(t, cmd.ParseFlags([]string{"--fields", "name,class", "-s", "class"}))
	assert.Equal(t, []string{"name", "class"}, qf.Fields)
	assert.Equal(t, "class", qf.Sort)
}

func TestQueryFlags_Validate(t *testing.T) {
	tests := []struct {
		name    string
		flags   QueryFlags
		wantErr string
	}{
		{name: "empty", flags: QueryFlags{}},
		{name: "known sort", flags: QueryFlags{Sort: "class"}},
		{name: "known fields", flags: QueryFlags{Fields: []string{"name", "id"}}},
		{name: "unknown sort", flags: QueryFlags{Sort: "color"}, wantErr: "unknown property name color"},
		{name: "unknown field", flags: QueryFlags{Fields: []string{"name", "size"}}, wantErr: "unknown property name size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.flags.Validate(deviceLabels)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}
}

func TestQueryFlags_Defaults(t *testing.T) {
	var qf QueryFlags
	assert.Equal(t, []string{"vendor", "id"}, qf.Columns([]string{"vendor", "id"}))
	assert.Equal(t, "vendor", qf.SortKey(deviceLabels))

	qf = QueryFlags{Sort: "class", Fields: []string{"id"}}
	assert.Equal(t, []string{"id"}, qf.Columns(deviceLabels))
	assert.Equal(t, "class", qf.SortKey(deviceLabels))
}

func TestParseConditions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		valid   []string
		want    map[string][]string
		wantErr string
	}{
		{
			name: "no conditions",
			want: map[string][]string{},
		},
		{
			name:  "single condition",
			args:  []string{"class=net"},
			valid: deviceLabels,
			want:  map[string][]string{"class": {"net"}},
		},
		{
			name:  "value may contain equals",
			args:  []string{"name=a=b"},
			valid: deviceLabels,
			want:  map[string][]string{"name": {"a=b"}},
		},
		{
			name:  "repeated key",
			args:  []string{"x-animal=cat", "x-animal=dog"},
			want:  map[string][]string{"x-animal": {"cat", "dog"}},
		},
		{
			name:    "missing equals",
			args:    []string{"class"},
			wantErr: "syntax error in condition, expecting KEY=VALUE",
		},
		{
			name:    "empty key",
			args:    []string{"=net"},
			wantErr: "syntax error in condition, expecting KEY=VALUE",
		},
		{
			name:    "unknown key",
			args:    []string{"color=red"},
			valid:   deviceLabels,
			wantErr: "unknown property name color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := ParseConditions(tt.args, tt.valid)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
				return
			}
			require.NoError(t, err)
			got := map[string][]string{}
			for _, key := range filter.ConstraintKeys() {
				got[key] = filter.ConstraintValues(key)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
