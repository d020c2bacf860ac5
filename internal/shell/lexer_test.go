package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "words",
			input: "connect 10.0.0.1",
			want: []Token{
				{Type: TokenWord, Value: "connect", Position: 0},
				{Type: TokenWord, Value: "10.0.0.1", Position: 8},
			},
		},
		{
			name:  "assignment",
			input: "$p = get port1",
			want: []Token{
				{Type: TokenVariable, Value: "p", Position: 0},
				{Type: TokenEquals, Value: "=", Position: 3},
				{Type: TokenWord, Value: "get", Position: 5},
				{Type: TokenWord, Value: "port1", Position: 9},
			},
		},
		{
			name:  "name value",
			input: `name="Port \"1\""`,
			want: []Token{
				{Type: TokenWord, Value: "name", Position: 0},
				{Type: TokenEquals, Value: "=", Position: 4},
				{Type: TokenString, Value: `Port "1"`, Position: 5},
			},
		},
		{
			name:  "nested braces",
			input: "{a {b c} d}",
			want:  []Token{{Type: TokenBraced, Value: "a {b c} d", Position: 0}},
		},
		{
			name:  "bracketed command",
			input: "[stc::get port1 -parent]",
			want:  []Token{{Type: TokenBracketed, Value: "stc::get port1 -parent", Position: 0}},
		},
		{
			name:  "braced variable",
			input: "${port.location}",
			want:  []Token{{Type: TokenVariable, Value: "port.location", Position: 0}},
		},
		{
			name:  "escaped closer",
			input: `{a\}b}`,
			want:  []Token{{Type: TokenBraced, Value: `a\}b`, Position: 0}},
		},
		{
			name:  "empty",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated string", `name="abc`},
		{"unbalanced brace", "{a {b}"},
		{"unbalanced bracket", "[stc::get x"},
		{"empty variable", "$ = get"},
		{"unterminated variable", "${abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "WORD", TokenWord.String())
	assert.Equal(t, "BRACKETED", TokenBracketed.String())
	assert.Equal(t, "EOF", Token{Type: TokenEOF}.String())
	assert.Equal(t, "STRING(x)", Token{Type: TokenString, Value: "x"}.String())
}
