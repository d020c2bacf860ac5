// Package script runs batches of engine operations described in YAML.
//
// A script names an ordered list of steps. Each step calls one session
// operation; its reply can be saved into a variable and referenced by later
// steps as ${name}:
//
//	name: two-port setup
//	vars:
//	  chassis: 10.0.0.1
//	steps:
//	  - op: connect
//	    target: ${chassis}
//	  - op: create
//	    type: port
//	    under: project1
//	    attrs:
//	      location: //${chassis}/1/1
//	    save: port1
//	  - op: get
//	    target: ${port1}
//	    save: port
//	  - op: perform
//	    target: BogusCommand
//	    expect_error: true
package script

import (
	"time"
)

// Operation names accepted in a step's op field
const (
	OpConfig     = "config"
	OpGet        = "get"
	OpCreate     = "create"
	OpDelete     = "delete"
	OpConnect    = "connect"
	OpDisconnect = "disconnect"
	OpReserve    = "reserve"
	OpRelease    = "release"
	OpPerform    = "perform"
)

// Script is a named list of steps loaded from YAML
type Script struct {
	// Name is a human-readable name for the script.
	Name string `yaml:"name"`

	// Description explains what the script sets up or checks.
	Description string `yaml:"description,omitempty"`

	// Vars seeds the variables available to ${name} references.
	Vars map[string]string `yaml:"vars,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`
}

// Step is one session operation
type Step struct {
	// Op is one of config, get, create, delete, connect, disconnect,
	// reserve, release or perform.
	Op string `yaml:"op"`

	// Target is the object handle, chassis address, port location or
	// command name, depending on Op.
	Target string `yaml:"target,omitempty"`

	// Type is the object type for create. Target is used when empty.
	Type string `yaml:"type,omitempty"`

	// Under is the parent handle for create.
	Under string `yaml:"under,omitempty"`

	// Names restricts get to the listed attributes.
	Names []string `yaml:"names,omitempty"`

	// Attrs are passed to config, create and perform.
	Attrs map[string]interface{} `yaml:"attrs,omitempty"`

	// Save stores the reply in a variable. Decoded replies also store each
	// attribute as <save>.<attribute>.
	Save string `yaml:"save,omitempty"`

	// ExpectError marks a step that must be rejected by the engine.
	ExpectError bool `yaml:"expect_error,omitempty"`

	// Description explains what this step does.
	Description string `yaml:"description,omitempty"`
}

// StepResult is the outcome of one executed step
type StepResult struct {
	Index       int
	Op          string
	Description string
	Result      string
	Err         error
	Duration    time.Duration
}

// Passed reports whether the step behaved as the script expected
func (r StepResult) Passed(step Step) bool {
	return (r.Err != nil) == step.ExpectError
}

// Report collects the outcome of a run
type Report struct {
	Script   string
	Steps    []StepResult
	Passed   bool
	Skipped  int
	Duration time.Duration
	Vars     map[string]string
}
