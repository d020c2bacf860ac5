package tcllist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cta/foundation/core/error"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n ", nil},
		{"bare words", "a b  c", []string{"a", "b", "c"}},
		{"braced", "-name {port 1} -x {}", []string{"-name", "port 1", "-x", ""}},
		{"nested braces", "{a {b c} d}", []string{"a {b c} d"}},
		{"escaped brace in braces", `{a \} b}`, []string{`a \} b`}},
		{"quoted", `"hello world" x`, []string{"hello world", "x"}},
		{"quoted escapes", `"tab\there"`, []string{"tab\there"}},
		{"bare escapes", `a\ b c`, []string{"a b", "c"}},
		{"hex escape", `\x41`, []string{"A"}},
		{"unicode escape", `\u00e9t\u00e9`, []string{"été"}},
		{"octal escape", `\101`, []string{"A"}},
		{"embedded quote", `it's {say "hi"}`, []string{"it's", `say "hi"`}},
		{"handles", "port1 port2 port3", []string{"port1", "port2", "port3"}},
		{"utf8 passthrough", "{größe 1}", []string{"größe 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated brace", "-name {port 1"},
		{"unterminated quote", `-name "port`},
		{"junk after brace", "{a}b"},
		{"junk after quote", `"a"b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.input)
			require.Error(t, err)
			assert.True(t, mdwerror.HasCode(err, mdwerror.CodeDecode))
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "{}"},
		{"plain", "plain"},
		{"two words", "{two words}"},
		{"a{b}c", "{a{b}c}"},
		{"[cmd]", "{[cmd]}"},
		{"#comment", "{#comment}"},
		{"open{", `open\{`},
		{"close}", `close\}`},
		{`trail\`, `trail\\`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.input))
		})
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	inputs := []string{
		"", "x", "a b", "{", "}", "}{", `\`, `a\`, `"`, "$var", "[x]",
		"line1\nline2", "\t", "#", "# x", `it's "quoted"`, "{a} {b", "ü ß",
	}
	for _, in := range inputs {
		got, err := Split(Quote(in))
		require.NoError(t, err, "Quote(%q) = %q", in, Quote(in))
		require.Len(t, got, 1, "Quote(%q) = %q", in, Quote(in))
		assert.Equal(t, in, got[0])
	}

	joined := Join(inputs)
	got, err := Split(joined)
	require.NoError(t, err)
	assert.Equal(t, inputs, got)
}

func TestBraceSafe(t *testing.T) {
	assert.True(t, BraceSafe("a {b} c"))
	assert.True(t, BraceSafe(`a \{`))
	assert.False(t, BraceSafe("a {"))
	assert.False(t, BraceSafe("} {"))
	assert.False(t, BraceSafe(`a\`))
	assert.True(t, BraceSafe(`a\\`))
	assert.False(t, BraceSafe("x\\\ny"))
	assert.True(t, BraceSafe("x\\\\\ny"))
	assert.Equal(t, `x\\\ny`, Quote("x\\\ny"))
}
