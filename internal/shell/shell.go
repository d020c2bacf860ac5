// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     shell
// Description: Interactive console for engine sessions
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

// Package shell implements the interactive console. Each line calls one
// session operation:
//
//	cta> connect 10.0.0.1
//	cta> $port = create port project1 location=//10.0.0.1/1/1
//	cta> config $port name="Port 1" active=true
//	cta> get $port name location
//	cta> perform SaveAsXml filename={C:/tmp/my config.xml}
//
// Values may be bare words, "quoted" strings with ${name} references,
// {braced} literals or [bracketed] engine commands.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	mdwlog "github.com/msto63/cta/foundation/core/log"
	"github.com/msto63/cta/internal/script"
	"github.com/msto63/cta/internal/tui"
	"github.com/msto63/cta/pkg/cta"
	"github.com/msto63/cta/pkg/tcllist"
)

// DefaultPrompt is used when Options.Prompt is empty
const DefaultPrompt = "cta> "

// ErrExit is returned by Execute for exit and quit
var ErrExit = errors.New("exit")

// Options configures a Shell
type Options struct {
	Prompt      string
	HistoryFile string
	Out         io.Writer
	Logger      *mdwlog.Logger
}

// Shell is the interactive console
type Shell struct {
	engine script.Engine
	vars   script.Vars
	opts   Options
	out    io.Writer
	logger *mdwlog.Logger
}

// New creates a console bound to engine
func New(engine script.Engine, opts Options) *Shell {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}
	return &Shell{
		engine: engine,
		vars:   make(script.Vars),
		opts:   opts,
		out:    out,
		logger: logger.WithField("component", "shell"),
	}
}

// Vars returns the console variables
func (s *Shell) Vars() script.Vars {
	return s.vars
}

// Run reads lines until exit, EOF or ctx is done
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.opts.Prompt,
		HistoryFile:     s.opts.HistoryFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	fmt.Fprintln(s.out, tui.RenderHelp("Type 'help' for commands, 'exit' to leave."))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			fmt.Fprintln(rl.Stderr(), tui.RenderError(err.Error()))
		}
	}
}

// Execute runs one console line and writes its output
func (s *Shell) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	stmt, err := Parse(line)
	if err != nil {
		return mdwerror.Wrap(err, "syntax error").WithCode(mdwerror.CodeInvalidArgument)
	}

	s.logger.Debug("console command", mdwlog.Fields{"line": line})

	switch stmt.Verb {
	case "help", "?":
		s.printHelp()
		return nil
	case "exit", "quit":
		return ErrExit
	case "vars":
		return s.cmdVars(stmt)
	case "set":
		return s.cmdSet(stmt)
	}

	reply, decoded, err := s.dispatch(ctx, stmt)
	if err != nil {
		return err
	}

	if stmt.Assign != "" {
		s.vars[stmt.Assign] = reply
		if decoded != nil {
			decoded.Range(func(key string, value tcllist.Value) bool {
				s.vars[stmt.Assign+"."+key] = value.String()
				return true
			})
		}
	}

	switch {
	case decoded != nil:
		fmt.Fprintln(s.out, tui.RenderDict(decoded))
	case reply != "":
		fmt.Fprintln(s.out, reply)
	}
	return nil
}

func (s *Shell) dispatch(ctx context.Context, stmt *Statement) (string, *tcllist.Dict, error) {
	args, err := s.words(stmt.Args)
	if err != nil {
		return "", nil, err
	}
	attrs, err := s.attrs(stmt.Attrs)
	if err != nil {
		return "", nil, err
	}

	switch stmt.Verb {
	case "config":
		if err := expect(stmt, args, 1, 1, true); err != nil {
			return "", nil, err
		}
		reply, err := s.engine.Config(ctx, args[0], attrs...)
		return reply, nil, err

	case "get":
		if err := expect(stmt, args, 1, -1, false); err != nil {
			return "", nil, err
		}
		res, err := s.engine.Get(ctx, args[0], args[1:]...)
		if err != nil {
			return "", nil, err
		}
		return res.Raw, res.Attrs, nil

	case "create":
		if err := expect(stmt, args, 1, 2, true); err != nil {
			return "", nil, err
		}
		under := ""
		if len(args) == 2 {
			under = args[1]
		}
		handle, err := s.engine.Create(ctx, args[0], under, attrs...)
		return handle, nil, err

	case "delete", "connect", "disconnect", "reserve", "release":
		if err := expect(stmt, args, 1, 1, false); err != nil {
			return "", nil, err
		}
		reply, err := s.simple(ctx, stmt.Verb, args[0])
		return reply, nil, err

	case "perform":
		if err := expect(stmt, args, 1, 1, true); err != nil {
			return "", nil, err
		}
		dict, err := s.engine.Perform(ctx, args[0], attrs...)
		if err != nil {
			return "", nil, err
		}
		return tcllist.Encode(dict), dict, nil

	default:
		return "", nil, usageError("unknown command %q (type 'help' for commands)", stmt.Verb)
	}
}

func (s *Shell) simple(ctx context.Context, verb, arg string) (string, error) {
	switch verb {
	case "delete":
		return s.engine.Delete(ctx, arg)
	case "connect":
		return s.engine.Connect(ctx, arg)
	case "disconnect":
		return s.engine.Disconnect(ctx, arg)
	case "reserve":
		return s.engine.Reserve(ctx, arg)
	default:
		return s.engine.Release(ctx, arg)
	}
}

func (s *Shell) cmdSet(stmt *Statement) error {
	if len(stmt.Attrs) > 0 || len(stmt.Args) == 0 || len(stmt.Args) > 2 {
		return usageError("usage: set <name> [value]")
	}
	name := stmt.Args[0].Value
	if len(stmt.Args) == 1 {
		value, ok := s.vars[name]
		if !ok {
			return usageError("no such variable %q", name)
		}
		fmt.Fprintln(s.out, value)
		return nil
	}
	value, err := s.word(stmt.Args[1])
	if err != nil {
		return err
	}
	s.vars[name] = value
	return nil
}

func (s *Shell) cmdVars(stmt *Statement) error {
	if len(stmt.Args) > 0 || len(stmt.Attrs) > 0 {
		return usageError("usage: vars")
	}
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "%s = %s\n", name, s.vars[name])
	}
	return nil
}

// word resolves a token to its text
func (s *Shell) word(tok Token) (string, error) {
	switch tok.Type {
	case TokenVariable:
		value, ok := s.vars[tok.Value]
		if !ok {
			return "", usageError("no such variable %q", tok.Value)
		}
		return value, nil
	case TokenBraced:
		return tok.Value, nil
	case TokenBracketed:
		return "[" + tok.Value + "]", nil
	default:
		return s.vars.Interpolate(tok.Value)
	}
}

func (s *Shell) words(tokens []Token) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		w, err := s.word(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// attrs resolves name=value pairs. Bracketed values become engine commands.
func (s *Shell) attrs(named []NamedArg) ([]cta.Attr, error) {
	if len(named) == 0 {
		return nil, nil
	}
	out := make([]cta.Attr, 0, len(named))
	for _, arg := range named {
		text, err := s.word(arg.Value)
		if err != nil {
			return nil, err
		}
		value := cta.String(text)
		if arg.Value.Type == TokenBracketed {
			value = cta.Command(text)
		}
		out = append(out, cta.Attr{Name: arg.Name, Value: value})
	}
	return out, nil
}

// expect checks the positional argument count; hi < 0 means unbounded
func expect(stmt *Statement, args []string, lo, hi int, allowAttrs bool) error {
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return usageError("usage: %s", usage[stmt.Verb])
	}
	if !allowAttrs && len(stmt.Attrs) > 0 {
		return usageError("%s takes no name=value arguments", stmt.Verb)
	}
	return nil
}

func usageError(format string, args ...interface{}) error {
	return mdwerror.Newf(format, args...).WithCode(mdwerror.CodeInvalidArgument)
}

var usage = map[string]string{
	"config":     "config <handle> name=value...",
	"get":        "get <handle> [name...]",
	"create":     "create <type> [under] name=value...",
	"delete":     "delete <handle>",
	"connect":    "connect <chassis address>",
	"disconnect": "disconnect <chassis address>",
	"reserve":    "reserve <//chassis/slot/port>",
	"release":    "release <//chassis/slot/port>",
	"perform":    "perform <command> name=value...",
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("config"),
		readline.PcItem("get"),
		readline.PcItem("create"),
		readline.PcItem("delete"),
		readline.PcItem("connect"),
		readline.PcItem("disconnect"),
		readline.PcItem("reserve"),
		readline.PcItem("release"),
		readline.PcItem("perform"),
		readline.PcItem("set"),
		readline.PcItem("vars"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Engine commands:
  config <handle> name=value...        - Set attributes on an object
  get <handle> [name...]               - Read all or selected attributes
  create <type> [under] name=value...  - Create an object, prints its handle
  delete <handle>                      - Delete an object
  connect <address>                    - Connect to a chassis
  disconnect <address>                 - Disconnect from a chassis
  reserve <//chassis/slot/port>        - Reserve a port
  release <//chassis/slot/port>        - Release a port
  perform <command> name=value...      - Run an engine command

Variables:
  $name = <command>                    - Store the reply in a variable
  set <name> [value]                   - Set or show a variable
  vars                                 - List variables

Values: word, "text with ${name}", {literal text}, [engine command]

  help                                 - Show this help
  exit                                 - Leave the console`)
}
