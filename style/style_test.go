package style

import (
	"testing"

	"charm.land/lipgloss/v2/table"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {

	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "hello", Truncate("hello", 0))
	assert.Equal(t, "…", Truncate("hello", 1))
}

func TestRowStyler(t *testing.T) {

	styler := RowStyler(2)
	assert.Equal(t, HlRowStyle, styler(2, 0))
	assert.Equal(t, UnStyle, styler(1, 0))
	assert.Equal(t, HeaderStyle, styler(table.HeaderRow, 0))
}
