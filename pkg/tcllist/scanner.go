// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     tcllist
// Description: List splitting and element quoting
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package tcllist

import (
	"strings"
	"unicode/utf8"

	mdwerror "github.com/msto63/cta/foundation/core/error"
)

// scanner walks a list string one byte at a time. All list syntax is
// ASCII, so multi-byte UTF-8 sequences pass through untouched.
type scanner struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

func newScanner(input string) *scanner {
	s := &scanner{input: input}
	s.readChar()
	return s
}

func (s *scanner) readChar() {
	if s.readPosition >= len(s.input) {
		s.ch = 0
	} else {
		s.ch = s.input[s.readPosition]
	}
	s.position = s.readPosition
	s.readPosition++
}

func (s *scanner) peekChar() byte {
	if s.readPosition >= len(s.input) {
		return 0
	}
	return s.input[s.readPosition]
}

func (s *scanner) atEnd() bool {
	return s.position >= len(s.input)
}

func (s *scanner) skipSpace() {
	for !s.atEnd() && isSpace(s.ch) {
		s.readChar()
	}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func decodeError(format string, args ...interface{}) error {
	return mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeDecode).
		WithOperation("tcllist.Split")
}

// Split parses a Tcl list into its elements.
func Split(list string) ([]string, error) {
	s := newScanner(list)
	var elems []string

	for {
		s.skipSpace()
		if s.atEnd() {
			return elems, nil
		}

		var (
			elem string
			err  error
		)
		switch s.ch {
		case '{':
			elem, err = s.readBraced()
		case '"':
			elem, err = s.readQuoted()
		default:
			elem = s.readBare()
		}
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}

// readBraced returns the verbatim content of a brace group. A backslash
// protects the following character from brace counting.
func (s *scanner) readBraced() (string, error) {
	start := s.position
	depth := 0
	for !s.atEnd() {
		switch s.ch {
		case '\\':
			s.readChar()
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				content := s.input[start+1 : s.position]
				s.readChar()
				if !s.atEnd() && !isSpace(s.ch) {
					return "", decodeError("list element in braces followed by %q instead of space", s.trailing())
				}
				return content, nil
			}
		}
		s.readChar()
	}
	return "", decodeError("unmatched open brace in list")
}

func (s *scanner) readQuoted() (string, error) {
	var b strings.Builder
	s.readChar()
	for !s.atEnd() {
		switch s.ch {
		case '"':
			s.readChar()
			if !s.atEnd() && !isSpace(s.ch) {
				return "", decodeError("list element in quotes followed by %q instead of space", s.trailing())
			}
			return b.String(), nil
		case '\\':
			s.readEscape(&b)
			continue
		default:
			b.WriteByte(s.ch)
		}
		s.readChar()
	}
	return "", decodeError("unmatched open quote in list")
}

func (s *scanner) readBare() string {
	var b strings.Builder
	for !s.atEnd() && !isSpace(s.ch) {
		if s.ch == '\\' {
			s.readEscape(&b)
			continue
		}
		b.WriteByte(s.ch)
		s.readChar()
	}
	return b.String()
}

func (s *scanner) trailing() string {
	end := s.position + 10
	if end > len(s.input) {
		end = len(s.input)
	}
	return s.input[s.position:end]
}

// readEscape consumes a backslash sequence starting at the current
// backslash and writes its substitution.
func (s *scanner) readEscape(b *strings.Builder) {
	s.readChar()
	if s.atEnd() {
		b.WriteByte('\\')
		return
	}

	switch s.ch {
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'v':
		b.WriteByte('\v')
	case '\n':
		s.readChar()
		for !s.atEnd() && (s.ch == ' ' || s.ch == '\t') {
			s.readChar()
		}
		b.WriteByte(' ')
		return
	case 'x':
		if r, ok := s.readHex(2); ok {
			b.WriteRune(r)
			return
		}
		b.WriteByte('x')
	case 'u':
		if r, ok := s.readHex(4); ok {
			b.WriteRune(r)
			return
		}
		b.WriteByte('u')
	case 'U':
		if r, ok := s.readHex(8); ok && utf8.ValidRune(r) {
			b.WriteRune(r)
			return
		}
		b.WriteByte('U')
	default:
		if isOctal(s.ch) {
			var r rune
			for i := 0; i < 3 && !s.atEnd() && isOctal(s.ch); i++ {
				r = r*8 + rune(s.ch-'0')
				s.readChar()
			}
			b.WriteRune(r & 0xff)
			return
		}
		b.WriteByte(s.ch)
	}
	s.readChar()
}

// readHex reads up to limit hex digits following the escape letter. The
// scanner is left on the first character after the digits.
func (s *scanner) readHex(limit int) (rune, bool) {
	var r rune
	n := 0
	for n < limit {
		d, ok := hexValue(s.peekChar())
		if !ok {
			break
		}
		r = r*16 + rune(d)
		s.readChar()
		n++
	}
	if n == 0 {
		return 0, false
	}
	s.readChar()
	return r, true
}

func hexValue(ch byte) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10, true
	}
	return 0, false
}

func isOctal(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

// Quote returns element in a form that Split reads back unchanged.
func Quote(element string) string {
	if element == "" {
		return "{}"
	}
	if isBareSafe(element) {
		return element
	}
	if BraceSafe(element) {
		return "{" + element + "}"
	}
	return escape(element)
}

// Join quotes each element and joins them with single spaces.
func Join(elements []string) string {
	quoted := make([]string, len(elements))
	for i, e := range elements {
		quoted[i] = Quote(e)
	}
	return strings.Join(quoted, " ")
}

// BraceSafe reports whether element survives being wrapped in braces:
// its braces balance, it does not end in an unpaired backslash and it has
// no backslash-newline, which the script parser folds even inside braces.
func BraceSafe(element string) bool {
	depth := 0
	for i := 0; i < len(element); i++ {
		switch element[i] {
		case '\\':
			if i == len(element)-1 || element[i+1] == '\n' {
				return false
			}
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func isBareSafe(element string) bool {
	if element[0] == '#' || element[0] == '{' || element[0] == '"' {
		return false
	}
	for i := 0; i < len(element); i++ {
		switch element[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f', '{', '}', '[', ']', '$', '"', ';', '\\':
			return false
		}
	}
	return true
}

func escape(element string) string {
	var b strings.Builder
	for i := 0; i < len(element); i++ {
		ch := element[i]
		switch ch {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case ' ', '{', '}', '[', ']', '$', '"', ';', '\\':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '#':
			if i == 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
