// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     tcllist
// Description: Ordered result dictionary, Decode and Encode
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package tcllist

import (
	"strings"
)

// Dict is an insertion-ordered mapping of attribute names to values.
// The zero value is ready to use.
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict returns an empty dictionary
func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

// Len returns the number of keys
func (d *Dict) Len() int {
	return len(d.keys)
}

// Keys returns the keys in first-insertion order
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Get returns the value for key
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// String returns the text of key, or "" when absent
func (d *Dict) String(key string) string {
	return d.values[key].text
}

// Set stores value under key. A key that is already present keeps its
// position and takes the new value.
func (d *Dict) Set(key string, value Value) {
	if d.values == nil {
		d.values = make(map[string]Value)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Range calls fn for each entry in order until fn returns false
func (d *Dict) Range(fn func(key string, value Value) bool) {
	for _, k := range d.keys {
		if !fn(k, d.values[k]) {
			return
		}
	}
}

// ToMap returns the entries as native Go values
func (d *Dict) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(d.keys))
	for _, k := range d.keys {
		out[k] = d.values[k].Interface()
	}
	return out
}

// Equal reports whether both dictionaries hold the same keys in the same
// order with the same text and kind.
func (d *Dict) Equal(other *Dict) bool {
	if d.Len() != other.Len() {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		a, b := d.values[k], other.values[k]
		if a.text != b.text || a.kind != b.kind {
			return false
		}
	}
	return true
}

// Decode turns a flat "-key value ..." list into a Dict. One leading dash
// is removed from each key. A trailing key without a value maps to "".
// Duplicate keys keep their first position and their last value.
func Decode(list string) (*Dict, error) {
	elems, err := Split(list)
	if err != nil {
		return nil, err
	}

	d := NewDict()
	for i := 0; i < len(elems); i += 2 {
		key := strings.TrimPrefix(elems[i], "-")
		value := ""
		if i+1 < len(elems) {
			value = elems[i+1]
		}
		d.Set(key, ParseValue(value))
	}
	return d, nil
}

// Encode renders d as a flat "-key value ..." list that Decode reads back
// into an equal Dict.
func Encode(d *Dict) string {
	elems := make([]string, 0, 2*d.Len())
	for _, k := range d.keys {
		elems = append(elems, "-"+k, d.values[k].text)
	}
	return Join(elems)
}
