package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatYAML, true},
		{FormatJSON, true},
		{FormatTable, true},
		{OutputFormat("dir"), false},
		{OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestOutputFormatString(t *testing.T) {
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "table", FormatTable.String())
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
		valid bool
	}{
		{"yaml", FormatYAML, true},
		{"YML", FormatYAML, true},
		{"json", FormatJSON, true},
		{"JSON", FormatJSON, true},
		{"table", FormatTable, true},
		{"TABLE", FormatTable, true},
		{"invalid", OutputFormat("invalid"), false},
		{"", OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, valid := ParseOutputFormat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidFormats(t *testing.T) {
	formats := ValidFormats()

	assert.Equal(t, []string{"table", "json", "yaml"}, formats)
}

func TestMarshal(t *testing.T) {
	v := map[string]any{"short-id": "fedora11", "name": "Fedora 11"}

	js, err := Marshal(v, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"short-id":"fedora11","name":"Fedora 11"}`, string(js))

	y, err := Marshal(v, FormatYAML)
	require.NoError(t, err)
	assert.YAMLEq(t, "short-id: fedora11\nname: Fedora 11\n", string(y))

	_, err = Marshal(v, FormatTable)
	assert.Error(t, err)
}
