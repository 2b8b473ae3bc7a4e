package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	tbl := NewTable("Short ID", "Name").
		Row("fedora11", "Fedora 11").
		Row("rhel6", "Red Hat Enterprise Linux 6")

	out := tbl.String()

	assert.Equal(t, 2, tbl.Len())
	assert.Contains(t, out, "Short ID")
	assert.Contains(t, out, "fedora11")
	assert.Contains(t, out, "Red Hat Enterprise Linux 6")
}

func TestTable_Empty(t *testing.T) {
	tbl := NewTable("Vendor", "Name")

	assert.Equal(t, 0, tbl.Len())
	assert.Contains(t, tbl.String(), "Vendor")
}
