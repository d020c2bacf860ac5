package shell

import (
	"fmt"
	"strings"
)

// Statement is one parsed console line:
//
//	[$var =] verb arg... name=value...
type Statement struct {
	Assign string     // variable receiving the reply, empty when none
	Verb   string     // lower-cased command word
	Args   []Token    // positional arguments in order
	Attrs  []NamedArg // name=value pairs in order
}

// NamedArg is a name=value pair
type NamedArg struct {
	Name  string
	Value Token
}

// Parse parses one console line. An empty line yields a nil statement.
func Parse(line string) (*Statement, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	stmt := &Statement{}
	i := 0

	if len(tokens) >= 2 && tokens[0].Type == TokenVariable && tokens[1].Type == TokenEquals {
		stmt.Assign = tokens[0].Value
		i = 2
	}

	if i >= len(tokens) {
		return nil, fmt.Errorf("missing command after $%s =", stmt.Assign)
	}
	if tokens[i].Type != TokenWord {
		return nil, fmt.Errorf("position %d: expected a command, got %s", tokens[i].Position+1, tokens[i])
	}
	stmt.Verb = strings.ToLower(tokens[i].Value)
	i++

	for i < len(tokens) {
		tok := tokens[i]

		if tok.Type == TokenEquals {
			return nil, fmt.Errorf("position %d: '=' without a name", tok.Position+1)
		}

		if i+1 < len(tokens) && tokens[i+1].Type == TokenEquals {
			if tok.Type != TokenWord {
				return nil, fmt.Errorf("position %d: attribute name must be a plain word", tok.Position+1)
			}
			eq := tokens[i+1]
			i += 2

			// The value must touch the '='; "name= x" sets an empty value
			value := Token{Type: TokenString, Position: eq.Position + 1}
			if i < len(tokens) && tokens[i].Position == eq.Position+1 && tokens[i].Type != TokenEquals {
				value = tokens[i]
				i++
			}
			stmt.Attrs = append(stmt.Attrs, NamedArg{Name: tok.Value, Value: value})
			continue
		}

		if len(stmt.Attrs) > 0 {
			return nil, fmt.Errorf("position %d: positional argument after name=value", tok.Position+1)
		}
		stmt.Args = append(stmt.Args, tok)
		i++
	}

	return stmt, nil
}
