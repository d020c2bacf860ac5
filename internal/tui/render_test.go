package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/cta/pkg/tcllist"
)

func TestRenderDict(t *testing.T) {
	d, err := tcllist.Decode("-name {Port 1} -location //10.0.0.1/1/1 -mtu 1500")
	require.NoError(t, err)

	out := RenderDict(d)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[0], "Port 1")
	assert.Contains(t, lines[1], "//10.0.0.1/1/1")
	assert.Contains(t, lines[2], "1500")

	// Values start in the same column
	col := strings.Index(lines[0], "Port 1")
	assert.Equal(t, col, strings.Index(lines[1], "//10.0.0.1/1/1"))
	assert.Equal(t, col, strings.Index(lines[2], "1500"))
}

func TestRenderDict_Empty(t *testing.T) {
	assert.Contains(t, RenderDict(nil), "no attributes")
	assert.Contains(t, RenderDict(tcllist.NewDict()), "no attributes")
}

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderStatus(true), "OK")
	assert.Contains(t, RenderStatus(false), "FAIL")
	assert.Contains(t, RenderError("boom"), "Error: boom")
}
