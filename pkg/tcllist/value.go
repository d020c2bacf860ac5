// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     tcllist
// Description: Numeric classification and decoded scalar values
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package tcllist

import (
	"math/big"
	"strconv"
	"strings"
)

// Kind is the classification of a decoded value
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Value is one decoded result value. Text always holds the element exactly
// as the engine returned it.
type Value struct {
	text string
	kind Kind
	i    int64
	f    float64
}

// StringValue returns a string-kinded value
func StringValue(s string) Value {
	return Value{text: s, kind: KindString}
}

// IntValue returns an integer-kinded value
func IntValue(n int64) Value {
	return Value{text: strconv.FormatInt(n, 10), kind: KindInteger, i: n, f: float64(n)}
}

// FloatValue returns a float-kinded value
func FloatValue(f float64) Value {
	return Value{text: strconv.FormatFloat(f, 'g', -1, 64), kind: KindFloat, f: f}
}

// Kind returns the classification
func (v Value) Kind() Kind { return v.kind }

// String returns the original text
func (v Value) String() string { return v.text }

// IsNumeric reports whether the value was classified as a number
func (v Value) IsNumeric() bool { return v.kind != KindString }

// Int returns the integer value. Floats are truncated; strings report false.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	}
	return 0, false
}

// Float returns the value as a float64. Strings report false.
func (v Value) Float() (float64, bool) {
	if v.kind == KindString {
		return 0, false
	}
	return v.f, true
}

// Interface returns the natural Go value: int64, float64 or string
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	}
	return v.text
}

// ParseValue classifies s and converts numeric text.
func ParseValue(s string) Value {
	literal, ok := numericLiteral(s)
	if !ok {
		return StringValue(s)
	}

	v := Value{text: s}
	if isIntegerLiteral(literal) {
		if n, err := parseInteger(literal); err == nil {
			v.kind, v.i, v.f = KindInteger, n, float64(n)
			return v
		}
		if f, ok := bigIntegerFloat(literal); ok {
			v.kind, v.f = KindFloat, f
			return v
		}
		return StringValue(s)
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		// Out of range decimals still carry +/-Inf from ParseFloat.
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			return StringValue(s)
		}
	}
	v.kind, v.f = KindFloat, f
	return v
}

// IsNumeric reports whether s is an arithmetic literal, either as written
// or with its leading zeros removed. Surrounding whitespace is ignored.
func IsNumeric(s string) bool {
	_, ok := numericLiteral(s)
	return ok
}

// numericLiteral returns the trimmed literal that passed classification.
func numericLiteral(s string) (string, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", false
	}
	if isNumberLiteral(t) {
		return normalizeDecimal(t), true
	}
	stripped := strings.TrimLeft(t, "0")
	if stripped != "" && isNumberLiteral(stripped) {
		return normalizeDecimal(stripped), true
	}
	return "", false
}

// normalizeDecimal drops leading zeros of a plain decimal integer so that
// "010" reads as ten rather than an octal eight.
func normalizeDecimal(t string) string {
	sign := ""
	body := t
	if body[0] == '+' || body[0] == '-' {
		sign, body = body[:1], body[1:]
	}
	if len(body) > 1 && body[0] == '0' && allDigits(body) {
		body = strings.TrimLeft(body, "0")
		if body == "" {
			body = "0"
		}
	}
	return sign + body
}

func isNumberLiteral(t string) bool {
	body := t
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return false
	}

	switch strings.ToLower(body) {
	case "inf", "infinity":
		return true
	}

	if len(body) > 2 && body[0] == '0' {
		switch body[1] {
		case 'x', 'X':
			return allDigitsIn(body[2:], isHexDigit)
		case 'o', 'O':
			return allDigitsIn(body[2:], func(c byte) bool { return c >= '0' && c <= '7' })
		case 'b', 'B':
			return allDigitsIn(body[2:], func(c byte) bool { return c == '0' || c == '1' })
		}
	}

	return isDecimalLiteral(body)
}

// isDecimalLiteral accepts digits with an optional fraction and exponent.
// At least one mantissa digit is required.
func isDecimalLiteral(body string) bool {
	i := 0
	mantissa := 0
	for i < len(body) && isDigit(body[i]) {
		i++
		mantissa++
	}
	if i < len(body) && body[i] == '.' {
		i++
		for i < len(body) && isDigit(body[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}
	if i < len(body) && (body[i] == 'e' || body[i] == 'E') {
		i++
		if i < len(body) && (body[i] == '+' || body[i] == '-') {
			i++
		}
		digits := 0
		for i < len(body) && isDigit(body[i]) {
			i++
			digits++
		}
		if digits == 0 {
			return false
		}
	}
	return i == len(body)
}

func isIntegerLiteral(t string) bool {
	body := strings.TrimLeft(t, "+-")
	if len(body) > 2 && body[0] == '0' && strings.ContainsRune("xXoObB", rune(body[1])) {
		return true
	}
	return allDigits(body)
}

func parseInteger(t string) (int64, error) {
	body := strings.TrimLeft(t, "+-")
	if len(body) > 2 && body[0] == '0' && strings.ContainsRune("xXoObB", rune(body[1])) {
		return strconv.ParseInt(t, 0, 64)
	}
	return strconv.ParseInt(t, 10, 64)
}

func bigIntegerFloat(t string) (float64, bool) {
	n, ok := new(big.Int).SetString(t, 0)
	if !ok {
		return 0, false
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, true
}

func allDigits(s string) bool {
	return allDigitsIn(s, isDigit)
}

func allDigitsIn(s string, pred func(byte) bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	_, ok := hexValue(c)
	return ok
}
