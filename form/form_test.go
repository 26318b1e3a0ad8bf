package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dasbor/variant"
)

func spec(t *testing.T) variant.Spec {
	t.Helper()

	spec, err := variant.Resolve(variant.Testimonial())
	require.NoError(t, err)
	return spec
}

func TestUpdate(t *testing.T) {

	frm := New("Add Testimonial", spec(t).Fields, map[string]string{"name": "Al"})
	assert.Equal(t, "image", frm.Focused())

	frm, changed, _ := frm.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, "", changed)
	assert.Equal(t, "name", frm.Focused())

	frm, changed, _ = frm.Update(tea.KeyPressMsg{Code: 'i', Text: "i"})
	assert.Equal(t, "name", changed)
	assert.Equal(t, "Ali", frm.Value("name"))

	frm, _, _ = frm.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	frm, _, _ = frm.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, "testimonial", frm.Focused())
}

func TestRender(t *testing.T) {

	frm := New("Add Testimonial", spec(t).Fields, nil)
	out := frm.Render("All fields are required", "ctrl+s: submit")

	assert.Contains(t, out, "Add Testimonial")
	assert.Contains(t, out, "Photo (path)")
	assert.Contains(t, out, "University")
	assert.Contains(t, out, "All fields are required")
	assert.Contains(t, out, "ctrl+s: submit")
}

func TestOverlay(t *testing.T) {

	assert.Equal(t, "x", Overlay(0, 0, "x"))
	assert.Contains(t, Overlay(20, 5, "x"), "x")
}
