package tcllist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"42", true},
		{"-7", true},
		{"+3", true},
		{"3.14", true},
		{".5", true},
		{"5.", true},
		{"1e10", true},
		{"-2.5E-3", true},
		{"0x1F", true},
		{"0o17", true},
		{"0b101", true},
		{"010", true},
		{"08", true},
		{"0009", true},
		{" 12 ", true},
		{"Inf", true},
		{"-infinity", true},
		{"", false},
		{"   ", false},
		{"-", false},
		{"abc", false},
		{"12abc", false},
		{"1e", false},
		{"0x", false},
		{"0xZZ", false},
		{"1.2.3", false},
		{"NaN", false},
		{"true", false},
		{"port1", false},
		{"10.0.0.1", false},
		{"00:10:94:00:00:01", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNumeric(tt.input))
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		i     int64
		f     float64
	}{
		{"42", KindInteger, 42, 42},
		{"-7", KindInteger, -7, -7},
		{"010", KindInteger, 10, 10},
		{"0x10", KindInteger, 16, 16},
		{"0b11", KindInteger, 3, 3},
		{"2.5", KindFloat, 2, 2.5},
		{"1e3", KindFloat, 1000, 1000},
		{"99999999999999999999", KindFloat, 0, 1e20},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := ParseValue(tt.input)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.input, v.String())
			f, ok := v.Float()
			assert.True(t, ok)
			assert.InDelta(t, tt.f, f, 1e-9*math.Max(1, math.Abs(tt.f)))
			if tt.kind == KindInteger {
				n, ok := v.Int()
				assert.True(t, ok)
				assert.Equal(t, tt.i, n)
			}
		})
	}
}

func TestParseValueString(t *testing.T) {
	v := ParseValue("port//1/1")
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "port//1/1", v.Interface())

	_, ok := v.Int()
	assert.False(t, ok)
	_, ok = v.Float()
	assert.False(t, ok)
}

func TestParseValueInf(t *testing.T) {
	v := ParseValue("-Inf")
	f, ok := v.Float()
	assert.True(t, ok)
	assert.True(t, math.IsInf(f, -1))
}
