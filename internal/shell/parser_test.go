package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	stmt, err := Parse(`$port = CREATE port project1 location=//10.0.0.1/1/1 name={Port 1} empty= next=[stc::get x]`)
	require.NoError(t, err)

	assert.Equal(t, "port", stmt.Assign)
	assert.Equal(t, "create", stmt.Verb)
	require.Len(t, stmt.Args, 2)
	assert.Equal(t, "port", stmt.Args[0].Value)
	assert.Equal(t, "project1", stmt.Args[1].Value)

	require.Len(t, stmt.Attrs, 4)
	assert.Equal(t, "location", stmt.Attrs[0].Name)
	assert.Equal(t, "//10.0.0.1/1/1", stmt.Attrs[0].Value.Value)
	assert.Equal(t, TokenBraced, stmt.Attrs[1].Value.Type)
	assert.Equal(t, "Port 1", stmt.Attrs[1].Value.Value)
	assert.Equal(t, "empty", stmt.Attrs[2].Name)
	assert.Equal(t, "", stmt.Attrs[2].Value.Value)
	assert.Equal(t, TokenBracketed, stmt.Attrs[3].Value.Type)
}

func TestParse_Empty(t *testing.T) {
	stmt, err := Parse("  ")
	require.NoError(t, err)
	assert.Nil(t, stmt)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"assignment only", "$x ="},
		{"verb not a word", `"get" port1`},
		{"stray equals", "config port1 = x"},
		{"quoted name", `config port1 "a"=b`},
		{"positional after attrs", "config port1 a=b port2"},
		{"lexer error", "get {port1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Error(t, err)
		})
	}
}
