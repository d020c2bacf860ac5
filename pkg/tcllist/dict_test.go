package tcllist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	d, err := Decode("-Name {Port 1} -Active true -Count 010 -Rate 1.5")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Active", "Count", "Rate"}, d.Keys())
	assert.Equal(t, "Port 1", d.String("Name"))

	active, _ := d.Get("Active")
	assert.Equal(t, KindString, active.Kind())

	count, _ := d.Get("Count")
	n, ok := count.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(10), n)

	rate, _ := d.Get("Rate")
	assert.Equal(t, KindFloat, rate.Kind())
}

func TestDecodeEdgeCases(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		d, err := Decode("")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, 0, d.Len())
	})

	t.Run("odd trailing key", func(t *testing.T) {
		d, err := Decode("-a 1 -b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, d.Keys())
		v, ok := d.Get("b")
		assert.True(t, ok)
		assert.Equal(t, "", v.String())
		assert.Equal(t, KindString, v.Kind())
	})

	t.Run("duplicate keys", func(t *testing.T) {
		d, err := Decode("-a 1 -b 2 -a 3")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, d.Keys())
		assert.Equal(t, "3", d.String("a"))
	})

	t.Run("one dash stripped", func(t *testing.T) {
		d, err := Decode("--weird x plain y")
		require.NoError(t, err)
		assert.Equal(t, []string{"-weird", "plain"}, d.Keys())
	})

	t.Run("special characters preserved", func(t *testing.T) {
		d, err := Decode(`-Desc {it's "quoted"} -Brace \{ -Path {C:\temp}`)
		require.NoError(t, err)
		assert.Equal(t, `it's "quoted"`, d.String("Desc"))
		assert.Equal(t, "{", d.String("Brace"))
		assert.Equal(t, `C:\temp`, d.String("Path"))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode("-a {1")
		require.Error(t, err)
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	d := NewDict()
	d.Set("Name", StringValue("Port 1"))
	d.Set("Count", IntValue(7))
	d.Set("Ratio", FloatValue(0.25))
	d.Set("Unbalanced", StringValue("a { b"))
	d.Set("Empty", StringValue(""))
	d.Set("-dash", StringValue("x"))

	got, err := Decode(Encode(d))
	require.NoError(t, err)
	assert.True(t, d.Equal(got), "round trip mismatch: %q", Encode(d))
}

func TestDictToMap(t *testing.T) {
	d, err := Decode("-a 1 -b x -c 2.5")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": int64(1), "b": "x", "c": 2.5}, d.ToMap())

	var seen []string
	d.Range(func(k string, _ Value) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestZeroDict(t *testing.T) {
	var d Dict
	d.Set("k", StringValue("v"))
	assert.Equal(t, 1, d.Len())
}
