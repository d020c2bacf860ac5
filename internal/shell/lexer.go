// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     shell
// Description: Lexical analysis of console input lines
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package shell

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Words and literals
	TokenWord      // port1, //10.0.0.1/1/1, -name
	TokenString    // "quoted text"
	TokenBraced    // {literal text}
	TokenBracketed // [engine command]
	TokenVariable  // $name

	// Operators
	TokenEquals // =
)

// Token represents a lexical token with position information
type Token struct {
	Type     TokenType // Token type
	Value    string    // Token text without delimiters
	Position int       // Byte position in input
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return fmt.Sprintf("ILLEGAL(%s)", t.Value)
	default:
		return fmt.Sprintf("%s(%s)", t.Type.String(), t.Value)
	}
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenWord:
		return "WORD"
	case TokenString:
		return "STRING"
	case TokenBraced:
		return "BRACED"
	case TokenBracketed:
		return "BRACKETED"
	case TokenVariable:
		return "VARIABLE"
	case TokenEquals:
		return "EQUALS"
	default:
		return "UNKNOWN"
	}
}

// Lexer performs lexical analysis of one console line
type Lexer struct {
	input    string // Input string
	position int    // Current position in input (points to current char)
	readPos  int    // Current reading position (after current char)
	ch       byte   // Current char under examination
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	pos := l.position

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Position: pos}
	case '=':
		l.readChar()
		return Token{Type: TokenEquals, Value: "=", Position: pos}
	case '"':
		return l.readQuoted(pos)
	case '{':
		return l.readNested(pos, '{', '}', TokenBraced)
	case '[':
		return l.readNested(pos, '[', ']', TokenBracketed)
	case '$':
		return l.readVariable(pos)
	default:
		return l.readWord(pos)
	}
}

// Tokenize returns all tokens up to and excluding EOF. The first illegal
// token stops the scan and is returned as an error.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		switch tok.Type {
		case TokenEOF:
			return tokens, nil
		case TokenIllegal:
			return nil, fmt.Errorf("position %d: %s", tok.Position+1, tok.Value)
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.position = l.readPos
	l.readPos++
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readWord reads up to whitespace or '='
func (l *Lexer) readWord(pos int) Token {
	start := l.position
	for l.ch != 0 && !isDelimiter(l.ch) {
		l.readChar()
	}
	return Token{Type: TokenWord, Value: l.input[start:l.position], Position: pos}
}

// readVariable reads $name or ${name}
func (l *Lexer) readVariable(pos int) Token {
	l.readChar() // skip '$'

	if l.ch == '{' {
		l.readChar()
		start := l.position
		for l.ch != 0 && l.ch != '}' {
			l.readChar()
		}
		if l.ch != '}' {
			return Token{Type: TokenIllegal, Value: "unterminated ${", Position: pos}
		}
		name := l.input[start:l.position]
		l.readChar()
		if name == "" {
			return Token{Type: TokenIllegal, Value: "empty variable name", Position: pos}
		}
		return Token{Type: TokenVariable, Value: name, Position: pos}
	}

	start := l.position
	for isNameChar(l.ch) {
		l.readChar()
	}
	if l.position == start {
		return Token{Type: TokenIllegal, Value: "empty variable name", Position: pos}
	}
	return Token{Type: TokenVariable, Value: l.input[start:l.position], Position: pos}
}

// readQuoted reads a double-quoted string. \" and \\ are unescaped; other
// backslash sequences are kept for the engine.
func (l *Lexer) readQuoted(pos int) Token {
	l.readChar() // skip opening quote

	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 {
			return Token{Type: TokenIllegal, Value: "unterminated string", Position: pos}
		}
		if l.ch == '\\' && (l.peekChar() == '"' || l.peekChar() == '\\') {
			l.readChar()
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing quote
	return Token{Type: TokenString, Value: sb.String(), Position: pos}
}

// readNested reads a balanced open/close group and returns its body
func (l *Lexer) readNested(pos int, open, close byte, typ TokenType) Token {
	l.readChar() // skip opener
	start := l.position
	depth := 1

	for {
		switch l.ch {
		case 0:
			return Token{Type: TokenIllegal, Value: fmt.Sprintf("missing %q", close), Position: pos}
		case '\\':
			l.readChar()
			if l.ch == 0 {
				continue
			}
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				body := l.input[start:l.position]
				l.readChar()
				return Token{Type: typ, Value: body, Position: pos}
			}
		}
		l.readChar()
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func isDelimiter(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '='
}

func isNameChar(ch byte) bool {
	return ch == '_' || ch == '.' ||
		('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
}
