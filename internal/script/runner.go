package script

import (
	"context"
	"time"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	mdwlog "github.com/msto63/cta/foundation/core/log"
	"github.com/msto63/cta/pkg/cta"
	"github.com/msto63/cta/pkg/tcllist"
)

// Engine is the set of session operations a script can call.
// *cta.Session satisfies it.
type Engine interface {
	Config(ctx context.Context, objectHandle string, attrs ...cta.Attr) (string, error)
	Get(ctx context.Context, objectHandle string, names ...string) (*cta.GetResult, error)
	Create(ctx context.Context, objectType, under string, attrs ...cta.Attr) (string, error)
	Delete(ctx context.Context, handle string) (string, error)
	Connect(ctx context.Context, ipAddress string) (string, error)
	Disconnect(ctx context.Context, ipAddress string) (string, error)
	Reserve(ctx context.Context, location string) (string, error)
	Release(ctx context.Context, location string) (string, error)
	Perform(ctx context.Context, command string, attrs ...cta.Attr) (*tcllist.Dict, error)
}

var _ Engine = (*cta.Session)(nil)

// StepHook is called after every executed step
type StepHook func(step Step, result StepResult)

// Runner executes scripts against an engine
type Runner struct {
	engine Engine
	logger *mdwlog.Logger
	onStep StepHook
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(engine Engine, logger *mdwlog.Logger) *Runner {
	if logger == nil {
		logger = mdwlog.Discard()
	}
	return &Runner{
		engine: engine,
		logger: logger.WithField("component", "script"),
	}
}

// OnStep registers a hook called after every executed step
func (r *Runner) OnStep(hook StepHook) {
	r.onStep = hook
}

// Run executes the steps of s in order and stops at the first step whose
// outcome differs from its expect_error setting. The returned error is nil
// when every step passed.
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	start := time.Now()
	vars := make(Vars, len(s.Vars))
	for k, v := range s.Vars {
		vars[k] = v
	}

	report := &Report{Script: s.Name, Passed: true, Vars: vars}
	defer func() { report.Duration = time.Since(start) }()

	r.logger.Info("Running script", mdwlog.Fields{"script": s.Name, "steps": len(s.Steps)})

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			report.Passed = false
			report.Skipped = len(s.Steps) - i
			return report, mdwerror.Wrap(err, "script cancelled").WithCode(mdwerror.CodeScript)
		}

		result := r.runStep(ctx, i, step, vars)
		report.Steps = append(report.Steps, result)
		if r.onStep != nil {
			r.onStep(step, result)
		}

		if result.Passed(step) {
			continue
		}

		report.Passed = false
		report.Skipped = len(s.Steps) - i - 1

		var err *mdwerror.Error
		if result.Err != nil {
			err = mdwerror.Wrap(result.Err, "step failed")
		} else {
			err = mdwerror.New("step succeeded but an error was expected").WithCode(mdwerror.CodeScript)
		}
		err = err.WithDetail("step", i+1).WithDetail("op", step.Op)
		r.logger.LogError(err)
		return report, err
	}

	r.logger.Info("Script passed", mdwlog.Fields{"script": s.Name})
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, index int, step Step, vars Vars) StepResult {
	result := StepResult{Index: index, Op: step.Op, Description: step.Description}
	timer := r.logger.StartTimer(step.Op)
	start := time.Now()

	reply, decoded, err := r.execute(ctx, step, vars)
	result.Duration = time.Since(start)
	result.Result = reply
	result.Err = err

	if err != nil {
		timer.StopWithError(err)
	} else {
		timer.Stop()
	}

	if err == nil && step.Save != "" {
		vars[step.Save] = reply
		if decoded != nil {
			decoded.Range(func(key string, value tcllist.Value) bool {
				vars[step.Save+"."+key] = value.String()
				return true
			})
		}
	}
	return result
}

// execute returns the reply text and, for decoded replies, the mapping
func (r *Runner) execute(ctx context.Context, step Step, vars Vars) (string, *tcllist.Dict, error) {
	target, err := vars.Interpolate(step.Target)
	if err != nil {
		return "", nil, err
	}
	rawAttrs, err := vars.interpolateAttrs(step.Attrs)
	if err != nil {
		return "", nil, err
	}
	attrs := cta.FromMap(rawAttrs)

	switch step.Op {
	case OpConfig:
		reply, err := r.engine.Config(ctx, target, attrs...)
		return reply, nil, err

	case OpGet:
		names, err := vars.interpolateAll(step.Names)
		if err != nil {
			return "", nil, err
		}
		res, err := r.engine.Get(ctx, target, names...)
		if err != nil {
			return "", nil, err
		}
		return res.Raw, res.Attrs, nil

	case OpCreate:
		objectType := step.Type
		if objectType == "" {
			objectType = step.Target
		}
		if objectType, err = vars.Interpolate(objectType); err != nil {
			return "", nil, err
		}
		under, err := vars.Interpolate(step.Under)
		if err != nil {
			return "", nil, err
		}
		handle, err := r.engine.Create(ctx, objectType, under, attrs...)
		return handle, nil, err

	case OpDelete:
		reply, err := r.engine.Delete(ctx, target)
		return reply, nil, err

	case OpConnect:
		reply, err := r.engine.Connect(ctx, target)
		return reply, nil, err

	case OpDisconnect:
		reply, err := r.engine.Disconnect(ctx, target)
		return reply, nil, err

	case OpReserve:
		reply, err := r.engine.Reserve(ctx, target)
		return reply, nil, err

	case OpRelease:
		reply, err := r.engine.Release(ctx, target)
		return reply, nil, err

	case OpPerform:
		dict, err := r.engine.Perform(ctx, target, attrs...)
		if err != nil {
			return "", nil, err
		}
		return tcllist.Encode(dict), dict, nil

	default:
		return "", nil, mdwerror.New("unknown operation").
			WithCode(mdwerror.CodeScript).
			WithDetail("op", step.Op)
	}
}
