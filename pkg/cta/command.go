// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     cta
// Description: Engine command construction and call log rendering
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cta

import (
	"strings"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	"github.com/msto63/cta/pkg/tcllist"
)

// Engine command verbs
const (
	verbConfig     = "stc::config"
	verbGet        = "stc::get"
	verbCreate     = "stc::create"
	verbDelete     = "stc::delete"
	verbConnect    = "stc::connect"
	verbDisconnect = "stc::disconnect"
	verbReserve    = "stc::reserve"
	verbRelease    = "stc::release"
	verbPerform    = "stc::perform"
)

// FormatValue renders a value as one command word. Command values and text
// starting with "[" stay unquoted so the engine substitutes them. Other
// text is wrapped in braces, or backslash-escaped when braces would not
// survive.
func FormatValue(v Value) string {
	if v.kind == KindCommand || strings.HasPrefix(v.text, "[") {
		return v.text
	}
	if tcllist.BraceSafe(v.text) {
		return "{" + v.text + "}"
	}
	return tcllist.Quote(v.text)
}

// formatWord renders a handle, type or address argument
func formatWord(s string) string {
	if strings.HasPrefix(s, "[") {
		return s
	}
	return tcllist.Quote(s)
}

func optionName(name string) (string, error) {
	name = strings.TrimPrefix(name, "-")
	if name == "" || strings.ContainsAny(name, " \t\r\n{}[]$\";\\") {
		return "", mdwerror.Newf("invalid attribute name %q", name).
			WithCode(mdwerror.CodeInvalidArgument)
	}
	return "-" + name, nil
}

// commandBuilder assembles one engine command
type commandBuilder struct {
	b   strings.Builder
	err error
}

func newCommand(verb string) *commandBuilder {
	c := &commandBuilder{}
	c.b.WriteString(verb)
	return c
}

func (c *commandBuilder) word(s string) *commandBuilder {
	c.b.WriteByte(' ')
	c.b.WriteString(formatWord(s))
	return c
}

func (c *commandBuilder) option(name string, value Value) *commandBuilder {
	opt, err := optionName(name)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return c
	}
	c.b.WriteByte(' ')
	c.b.WriteString(opt)
	c.b.WriteByte(' ')
	c.b.WriteString(FormatValue(value))
	return c
}

func (c *commandBuilder) flag(name string) *commandBuilder {
	opt, err := optionName(name)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return c
	}
	c.b.WriteByte(' ')
	c.b.WriteString(opt)
	return c
}

func (c *commandBuilder) attrs(attrs []Attr) *commandBuilder {
	for _, a := range attrs {
		c.option(a.Name, a.Value)
	}
	return c
}

func (c *commandBuilder) build() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.b.String(), nil
}

// BuildConfig returns "stc::config <target> -name value ..."
func BuildConfig(target string, attrs ...Attr) (string, error) {
	return newCommand(verbConfig).word(target).attrs(attrs).build()
}

// BuildGet returns "stc::get <target> -name1 -name2 ..."
func BuildGet(target string, names ...string) (string, error) {
	c := newCommand(verbGet).word(target)
	for _, n := range names {
		c.flag(n)
	}
	return c.build()
}

// BuildCreate returns "stc::create <type> -under <parent> -name value ...".
// The -under option is left out when under is empty.
func BuildCreate(objectType, under string, attrs ...Attr) (string, error) {
	c := newCommand(verbCreate).word(objectType)
	if under != "" {
		c.b.WriteString(" -under ")
		c.b.WriteString(formatWord(under))
	}
	return c.attrs(attrs).build()
}

// BuildPerform returns "stc::perform <command> -name value ..."
func BuildPerform(command string, attrs ...Attr) (string, error) {
	return newCommand(verbPerform).word(command).attrs(attrs).build()
}

// buildSimple returns "<verb> <arg>" for the single-argument verbs
func buildSimple(verb, arg string) (string, error) {
	return newCommand(verb).word(arg).build()
}

// callParam is one argument of a logged call
type callParam struct {
	name  string
	value string
}

// renderCall renders a call for the session log, e.g.
// config(objecthandle="project1", Name="x")
func renderCall(method string, params []callParam) string {
	var b strings.Builder
	b.WriteString(method)
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.name)
		b.WriteString(`="`)
		b.WriteString(p.value)
		b.WriteByte('"')
	}
	b.WriteByte(')')
	return b.String()
}

func attrParams(fixed []callParam, attrs []Attr) []callParam {
	params := make([]callParam, 0, len(fixed)+len(attrs))
	params = append(params, fixed...)
	for _, a := range attrs {
		params = append(params, callParam{name: a.Name, value: a.Value.text})
	}
	return params
}
