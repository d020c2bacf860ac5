// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     cta
// Description: Session bootstrap, command execution and shutdown
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cta

import (
	"context"
	"io"
	"os"
	"os/user"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	mdwlog "github.com/msto63/cta/foundation/core/log"
	"github.com/msto63/cta/internal/interp"
	"github.com/msto63/cta/pkg/core/logging"
	"github.com/msto63/cta/pkg/tcllist"
)

// DefaultPackage is the engine package loaded at startup
const DefaultPackage = "SpirentTestCenterConformance"

// Interpreter evaluates engine scripts. *interp.Process implements it.
type Interpreter interface {
	Eval(ctx context.Context, script string) (string, error)
	Close() error
}

// Options configures Open
type Options struct {
	// APIPath is the engine installation directory added to ::auto_path.
	// It must exist when set.
	APIPath string

	// LogPath is the session log directory. Empty selects
	// $CTA_LOG_OUTPUT_DIRECTORY, then ~/Spirent/CTA/Logs/<timestamp>_PID<pid>.
	LogPath string

	// LogLevel is one of CRITICAL, ERROR, WARNING, INFO, DEBUG. Anything
	// else selects DEBUG.
	LogLevel string

	// Package overrides DefaultPackage
	Package string

	// TclshPath selects the interpreter executable
	TclshPath string

	// StartupTimeout bounds interpreter startup
	StartupTimeout time.Duration

	// Interpreter replaces the tclsh process, mainly for tests
	Interpreter Interpreter

	// Recorder receives one Record per executed command
	Recorder Recorder

	// Mirror receives a copy of every session log line
	Mirror io.Writer

	// Getenv replaces os.Getenv
	Getenv func(string) string
}

// active guards the one-session-per-process rule
var active atomic.Bool

// Session is an open engine session. Methods are safe for concurrent use;
// commands are executed one at a time.
type Session struct {
	id       string
	logDir   string
	logFile  *os.File
	logger   *mdwlog.Logger
	interp   Interpreter
	recorder Recorder
	opts     Options

	mu     sync.Mutex
	closed bool
}

// Open starts a session. Only one session may be open per process; a
// second Open fails with CodeSessionActive until the first is closed.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if !active.CompareAndSwap(false, true) {
		return nil, mdwerror.New("an engine session is already open in this process").
			WithCode(mdwerror.CodeSessionActive).
			WithOperation("open")
	}

	s, err := open(ctx, opts)
	if err != nil {
		active.Store(false)
		return nil, err
	}
	return s, nil
}

func open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}

	logDir, err := logging.ResolveLogDir(opts.LogPath, opts.Getenv)
	if err != nil {
		return nil, mdwerror.Wrap(err, "resolve log directory").WithCode(mdwerror.CodeBootstrap)
	}
	logFile, err := logging.OpenLogFile(logDir)
	if err != nil {
		return nil, mdwerror.Wrap(err, "open session log").WithCode(mdwerror.CodeBootstrap)
	}

	cfg := logging.LoggerConfig{Name: "cta", Level: opts.LogLevel, Format: "text", Output: logFile}
	if opts.Mirror != nil {
		cfg.AdditionalOutputs = []io.Writer{opts.Mirror}
	}

	s := &Session{
		id:       uuid.New().String(),
		logDir:   logDir,
		logFile:  logFile,
		logger:   logging.NewLogger(cfg),
		recorder: opts.Recorder,
		opts:     opts,
	}

	s.logBanner()

	if err := s.bootstrap(ctx); err != nil {
		s.logger.LogError(err)
		if s.interp != nil {
			s.interp.Close()
		}
		logFile.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) logBanner() {
	level := mdwlog.LevelFromName(s.opts.LogLevel)
	cwd, _ := os.Getwd()
	userID := "unknown"
	if u, err := user.Current(); err == nil {
		userID = u.Username
	}

	s.logger.Info("OS Type: " + runtime.GOOS)
	s.logger.Info("API Path: " + s.opts.APIPath)
	s.logger.Info("UserID: " + userID)
	s.logger.Info("Log Level: " + level.String())
	s.logger.Info("Current Path: " + cwd)
	s.logger.Info("Log Path: " + s.logDir)
	s.logger.Info("Session: " + s.id)
}

func (s *Session) bootstrap(ctx context.Context) error {
	if s.opts.APIPath != "" {
		if _, err := os.Stat(s.opts.APIPath); err != nil {
			return mdwerror.Wrap(err, "engine installation not found").
				WithCode(mdwerror.CodeBootstrap).
				WithDetail("api_path", s.opts.APIPath)
		}
	}

	s.interp = s.opts.Interpreter
	if s.interp == nil {
		p, err := interp.Start(ctx, interp.Config{
			Tclsh:          s.opts.TclshPath,
			ScriptDir:      s.logDir,
			StartupTimeout: s.opts.StartupTimeout,
			Logger:         s.logger,
		})
		if err != nil {
			return err
		}
		s.interp = p
	}

	if version, err := s.interp.Eval(ctx, "info patchlevel"); err == nil {
		s.logger.Info("Tcl Version: " + version)
	}

	if s.opts.APIPath != "" {
		if _, err := s.interp.Eval(ctx, "lappend ::auto_path "+tcllist.Quote(s.opts.APIPath)); err != nil {
			return mdwerror.Wrap(err, "extend ::auto_path").WithCode(mdwerror.CodeBootstrap)
		}
	}
	if autoPath, err := s.interp.Eval(ctx, "set ::auto_path"); err == nil {
		s.logger.Info("Tcl Auto Path: " + autoPath)
	}

	version, err := s.interp.Eval(ctx, "package require "+tcllist.Quote(s.opts.Package))
	if err != nil {
		return mdwerror.Wrap(err, "load package "+s.opts.Package).WithCode(mdwerror.CodeBootstrap)
	}
	s.logger.Info(s.opts.Package + " Version: " + version)
	return nil
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// LogDir returns the session log directory
func (s *Session) LogDir() string { return s.logDir }

// Logger returns the session logger
func (s *Session) Logger() *mdwlog.Logger { return s.logger }

// Eval sends a raw script to the engine. It is logged and recorded like
// every other command.
func (s *Session) Eval(ctx context.Context, script string) (string, error) {
	return s.exec(ctx, "eval", renderCall("eval", []callParam{{"script", script}}), script, nil)
}

// exec runs one engine command: log the call, the command and the raw
// result, and record it.
func (s *Session) exec(ctx context.Context, op, call, command string, attrs []Attr) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", mdwerror.New("session is closed").
			WithCode(mdwerror.CodeSessionClosed).
			WithOperation(op)
	}

	s.logger.Debug(call)
	s.logger.Debug("Tcl command: " + command)

	start := time.Now()
	result, err := s.interp.Eval(ctx, command)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Error(err.Error(), mdwlog.Fields{"command": command})
	} else {
		s.logger.Debug("Tcl result: " + result)
	}

	s.record(ctx, Record{
		Operation: op,
		Call:      call,
		Command:   command,
		Result:    result,
		Err:       err,
		Duration:  elapsed,
		Attrs:     Attrs(attrs).Map(),
	})
	return result, err
}

func (s *Session) decode(raw string) (*tcllist.Dict, error) {
	d, err := tcllist.Decode(raw)
	if err != nil {
		s.logger.Error(err.Error(), mdwlog.Fields{"result": raw})
		return nil, err
	}
	s.logger.Debug("Decoded result: " + tcllist.Encode(d))
	return d, nil
}

// Close shuts the interpreter down, closes the log and releases the
// process-wide session slot. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.interp != nil {
		err = s.interp.Close()
	}
	s.logger.Info("Session closed")
	if cerr := s.logFile.Close(); err == nil {
		err = cerr
	}
	active.Store(false)
	return err
}

// Closed reports whether Close has been called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func trimHandle(s string) string {
	return strings.TrimSpace(s)
}
