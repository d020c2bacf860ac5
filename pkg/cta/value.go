// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     cta
// Description: Typed attribute values and attribute lists
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cta

import (
	"fmt"
	"sort"
	"strconv"
)

// ValueKind tags the origin of an attribute value
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindCommand
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Value is an attribute value. Command values are engine command
// fragments that are passed through unquoted, e.g. "[stc::get port1 -Name]".
type Value struct {
	kind ValueKind
	text string
}

// String returns a string value
func String(s string) Value { return Value{kind: KindString, text: s} }

// Int returns an integer value
func Int(n int64) Value { return Value{kind: KindInt, text: strconv.FormatInt(n, 10)} }

// Float returns a floating point value
func Float(f float64) Value { return Value{kind: KindFloat, text: strconv.FormatFloat(f, 'g', -1, 64)} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, text: strconv.FormatBool(b)} }

// Command returns a raw command fragment value
func Command(script string) Value { return Value{kind: KindCommand, text: script} }

// Kind returns the value kind
func (v Value) Kind() ValueKind { return v.kind }

// Text returns the textual form sent to the engine
func (v Value) Text() string { return v.text }

func (v Value) String() string { return v.text }

// ValueOf converts a Go value into a Value
func ValueOf(x interface{}) Value {
	switch t := x.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Value{kind: KindInt, text: strconv.FormatUint(uint64(t), 10)}
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return Value{kind: KindInt, text: strconv.FormatUint(t, 10)}
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case nil:
		return String("")
	case fmt.Stringer:
		return String(t.String())
	default:
		return String(fmt.Sprint(t))
	}
}

// Attr is one named attribute
type Attr struct {
	Name  string
	Value Value
}

// A builds an attribute from any Go value
func A(name string, value interface{}) Attr {
	return Attr{Name: name, Value: ValueOf(value)}
}

// Attrs is an ordered attribute list. Commands are rendered in list order.
type Attrs []Attr

// FromMap converts a map into attributes sorted by name
func FromMap(m map[string]interface{}) Attrs {
	attrs := make(Attrs, 0, len(m))
	for k, v := range m {
		attrs = append(attrs, A(k, v))
	}
	sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	return attrs
}

// Sorted returns a copy ordered by name
func (a Attrs) Sorted() Attrs {
	out := make(Attrs, len(a))
	copy(out, a)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Map returns the attribute texts keyed by name
func (a Attrs) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, attr := range a {
		m[attr.Name] = attr.Value.text
	}
	return m
}
