// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     interp
// Description: Managed tclsh process that evaluates scripts on request
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

// Package interp runs a tclsh child process and evaluates scripts in it
// over a length-prefixed pipe protocol.
package interp

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	mdwlog "github.com/msto63/cta/foundation/core/log"
	"github.com/msto63/cta/pkg/core/logging"
)

//go:embed server.tcl
var serverScript string

// ScriptName is the file name of the bootstrap script
const ScriptName = "cta_server.tcl"

// Status represents the lifecycle state of the interpreter process
type Status int

const (
	StatusStopped Status = iota
	StatusStarting
	StatusRunning
	StatusStopping
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusStarting:
		return "starting"
	case StatusRunning:
		return "running"
	case StatusStopping:
		return "stopping"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config holds interpreter process configuration
type Config struct {
	// Tclsh is the interpreter executable, "tclsh" when empty
	Tclsh string

	// ScriptDir receives the bootstrap script. A temporary file is used
	// and removed on Close when empty.
	ScriptDir string

	// Env is added to the inherited environment
	Env map[string]string

	// StartupTimeout bounds the wait for the ready handshake
	StartupTimeout time.Duration

	// StopTimeout bounds the wait for a clean exit on Close
	StopTimeout time.Duration

	Logger *mdwlog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Tclsh:          "tclsh",
		StartupTimeout: 10 * time.Second,
		StopTimeout:    2 * time.Second,
	}
}

// Process is a running interpreter. Eval calls are serialized.
type Process struct {
	cfg           Config
	logger        *logging.Logger
	scriptPath    string
	removeOnClose bool

	cmd       *exec.Cmd
	stdin     io.WriteCloser
	replies   *bufio.Reader
	replyFile *os.File
	output    sync.WaitGroup
	done      chan struct{}

	evalMu sync.Mutex

	mu        sync.RWMutex
	status    Status
	pid       int
	startedAt time.Time
	lastError string
}

// Start launches the interpreter and waits until it accepts requests
func Start(ctx context.Context, cfg Config) (*Process, error) {
	defaults := DefaultConfig()
	if cfg.Tclsh == "" {
		cfg.Tclsh = defaults.Tclsh
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = defaults.StartupTimeout
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = defaults.StopTimeout
	}

	p := &Process{
		cfg:    cfg,
		logger: logging.Wrap(cfg.Logger, "interp"),
		status: StatusStarting,
		done:   make(chan struct{}),
	}

	if err := p.writeScript(); err != nil {
		return nil, bootstrapError(err, "write bootstrap script")
	}

	cmd := exec.Command(cfg.Tclsh, p.scriptPath)
	cmd.Env = os.Environ()
	for k, v := range cfg.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	// Own process group so Close can take down anything the engine spawned
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, bootstrapError(err, "open interpreter stdin")
	}

	// Replies travel on fd 3; stdout and stderr belong to the engine
	replyR, replyW, err := os.Pipe()
	if err != nil {
		stdin.Close()
		return nil, bootstrapError(err, "open reply pipe")
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		stdin.Close()
		closeFiles(replyR, replyW)
		return nil, bootstrapError(err, "open interpreter stdout")
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		stdin.Close()
		closeFiles(replyR, replyW, outR, outW)
		return nil, bootstrapError(err, "open interpreter stderr")
	}
	cmd.ExtraFiles = []*os.File{replyW}
	cmd.Stdout = outW
	cmd.Stderr = errW

	startErr := cmd.Start()
	closeFiles(replyW, outW, errW)
	if startErr != nil {
		closeFiles(replyR, outR, errR)
		p.cleanup()
		return nil, bootstrapError(startErr, "start "+cfg.Tclsh)
	}

	p.cmd = cmd
	p.stdin = stdin
	p.replyFile = replyR
	p.replies = bufio.NewReader(replyR)
	p.mu.Lock()
	p.pid = cmd.Process.Pid
	p.startedAt = time.Now()
	p.mu.Unlock()

	p.logger.Info("Interpreter process started", "tclsh", cfg.Tclsh, "pid", p.pid, "script", p.scriptPath)

	p.output.Add(2)
	go p.forwardOutput(outR, "stdout")
	go p.forwardOutput(errR, "stderr")
	go p.monitorProcess()

	if err := p.waitReady(ctx); err != nil {
		p.kill()
		p.cleanup()
		return nil, err
	}

	p.setStatus(StatusRunning, "")
	return p, nil
}

func (p *Process) writeScript() error {
	if p.cfg.ScriptDir == "" {
		f, err := os.CreateTemp("", "cta_server_*.tcl")
		if err != nil {
			return err
		}
		defer f.Close()
		p.scriptPath = f.Name()
		p.removeOnClose = true
		_, err = f.WriteString(serverScript)
		return err
	}

	if err := os.MkdirAll(p.cfg.ScriptDir, 0o755); err != nil {
		return err
	}
	p.scriptPath = filepath.Join(p.cfg.ScriptDir, ScriptName)
	return os.WriteFile(p.scriptPath, []byte(serverScript), 0o644)
}

// waitReady blocks until the server writes its ready line
func (p *Process) waitReady(ctx context.Context) error {
	type result struct {
		line string
		err  error
	}
	ready := make(chan result, 1)
	go func() {
		line, err := p.replies.ReadString('\n')
		ready <- result{strings.TrimSpace(line), err}
	}()

	timer := time.NewTimer(p.cfg.StartupTimeout)
	defer timer.Stop()

	select {
	case r := <-ready:
		if r.err != nil {
			return bootstrapError(r.err, "interpreter exited during startup")
		}
		if r.line != readyLine {
			return bootstrapError(fmt.Errorf("unexpected handshake %q", r.line), "interpreter handshake")
		}
		return nil
	case <-timer.C:
		return bootstrapError(fmt.Errorf("no handshake after %s", p.cfg.StartupTimeout), "interpreter handshake")
	case <-ctx.Done():
		return bootstrapError(ctx.Err(), "interpreter handshake")
	}
}

// forwardOutput logs every line the engine writes to stream. stdout lines
// are logged at INFO and stderr lines at WARNING.
func (p *Process) forwardOutput(r *os.File, stream string) {
	defer p.output.Done()
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if stream == "stderr" {
			p.logger.Warn("Interpreter stderr", "line", scanner.Text())
		} else {
			p.logger.Info("Interpreter stdout", "line", scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		p.logger.Warn("Interpreter output not logged", "stream", stream, "error", err)
		io.Copy(io.Discard, r)
	}
}

// monitorProcess waits for the process to exit and records how it ended.
// done is closed once the engine output has been logged.
func (p *Process) monitorProcess() {
	err := p.cmd.Wait()

	drained := make(chan struct{})
	go func() {
		p.output.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(p.cfg.StopTimeout):
		p.logger.Warn("Interpreter output still open after exit")
	}

	p.mu.Lock()
	switch {
	case p.status == StatusStopping:
		p.status = StatusStopped
	case err != nil:
		p.status = StatusFailed
		p.lastError = err.Error()
	default:
		p.status = StatusStopped
	}
	status := p.status
	p.pid = 0
	p.mu.Unlock()

	if status == StatusFailed {
		p.logger.Warn("Interpreter exited with error", "error", err)
	} else {
		p.logger.Info("Interpreter exited")
	}
	close(p.done)
}

// Eval evaluates script at global level and returns its result. A script
// that raises an error yields a CodeEngine error whose text is the
// interpreter's message. The context is only consulted before the script
// is sent; a running evaluation cannot be interrupted.
func (p *Process) Eval(ctx context.Context, script string) (string, error) {
	p.evalMu.Lock()
	defer p.evalMu.Unlock()

	if status := p.Status(); status != StatusRunning {
		return "", mdwerror.Newf("interpreter is %s", status).
			WithCode(mdwerror.CodeTransport).
			WithOperation("eval")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := writeRequest(p.stdin, script); err != nil {
		return "", p.transportFailure(err)
	}
	code, result, err := readResponse(p.replies)
	if err != nil {
		return "", p.transportFailure(err)
	}

	if code == codeError {
		return "", mdwerror.New(result).
			WithCode(mdwerror.CodeEngine).
			WithOperation("eval").
			WithDetail("script", script)
	}
	return result, nil
}

func (p *Process) transportFailure(err error) error {
	p.setStatus(StatusFailed, err.Error())
	return mdwerror.Wrap(err, "interpreter connection lost").WithCode(mdwerror.CodeTransport)
}

// Close asks the interpreter to exit and kills its process group when it
// does not stop in time. Close is idempotent.
func (p *Process) Close() error {
	p.evalMu.Lock()
	defer p.evalMu.Unlock()

	p.mu.Lock()
	if p.cmd == nil || p.status == StatusStopped || p.status == StatusStopping {
		p.mu.Unlock()
		return nil
	}
	failed := p.status == StatusFailed
	p.status = StatusStopping
	p.mu.Unlock()

	if !failed {
		_ = writeRequest(p.stdin, "exit")
	}
	_ = p.stdin.Close()

	select {
	case <-p.done:
	case <-time.After(p.cfg.StopTimeout):
		p.logger.Warn("Interpreter did not exit, killing process group")
		p.kill()
		<-p.done
	}

	p.cleanup()
	return nil
}

func (p *Process) kill() {
	p.mu.RLock()
	pid := p.pid
	p.mu.RUnlock()
	if pid == 0 {
		return
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		p.logger.Warn("Failed to kill interpreter", "pid", pid, "error", err)
	}
}

func (p *Process) cleanup() {
	if p.replyFile != nil {
		p.replyFile.Close()
	}
	if p.removeOnClose && p.scriptPath != "" {
		os.Remove(p.scriptPath)
	}
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		f.Close()
	}
}

func (p *Process) setStatus(status Status, lastError string) {
	p.mu.Lock()
	p.status = status
	if lastError != "" {
		p.lastError = lastError
	}
	p.mu.Unlock()
}

// Status returns the current lifecycle state
func (p *Process) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// PID returns the process id, 0 once exited
func (p *Process) PID() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pid
}

// LastError returns the last recorded failure
func (p *Process) LastError() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastError
}

// Uptime returns the time since start
func (p *Process) Uptime() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.startedAt.IsZero() {
		return 0
	}
	return time.Since(p.startedAt)
}

// ScriptPath returns the location of the bootstrap script
func (p *Process) ScriptPath() string {
	return p.scriptPath
}

func bootstrapError(err error, message string) error {
	return mdwerror.Wrap(err, message).WithCode(mdwerror.CodeBootstrap)
}
