// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     cta
// Description: Engine verbs: config, get, create, delete, connect,
//              disconnect, reserve, release and perform
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cta

import (
	"context"
	"strings"

	"github.com/msto63/cta/pkg/tcllist"
)

// GetResult is the outcome of Get. Attrs is set only when no attribute
// names were requested; otherwise Raw holds the engine's answer as is.
type GetResult struct {
	Raw   string
	Attrs *tcllist.Dict
}

// Decoded reports whether Attrs is populated
func (r *GetResult) Decoded() bool {
	return r.Attrs != nil
}

// Config sets attributes on an object and returns the engine's reply
func (s *Session) Config(ctx context.Context, objectHandle string, attrs ...Attr) (string, error) {
	command, err := BuildConfig(objectHandle, attrs...)
	if err != nil {
		return "", err
	}
	call := renderCall("config", attrParams([]callParam{{"objecthandle", objectHandle}}, attrs))
	return s.exec(ctx, "config", call, command, attrs)
}

// Get reads attributes of an object. With no names every attribute is
// returned decoded into Attrs. With names the reply is returned raw.
func (s *Session) Get(ctx context.Context, objectHandle string, names ...string) (*GetResult, error) {
	command, err := BuildGet(objectHandle, names...)
	if err != nil {
		return nil, err
	}

	params := []callParam{{"objecthandle", objectHandle}}
	if len(names) > 0 {
		params = append(params, callParam{"args", strings.Join(names, " ")})
	}

	raw, err := s.exec(ctx, "get", renderCall("get", params), command, nil)
	if err != nil {
		return nil, err
	}

	result := &GetResult{Raw: raw}
	if len(names) == 0 {
		if result.Attrs, err = s.decode(raw); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// GetAll returns every attribute of an object
func (s *Session) GetAll(ctx context.Context, objectHandle string) (*tcllist.Dict, error) {
	result, err := s.Get(ctx, objectHandle)
	if err != nil {
		return nil, err
	}
	return result.Attrs, nil
}

// Create creates an object of objectType under a parent handle and
// returns the new handle. An empty under creates a root object.
func (s *Session) Create(ctx context.Context, objectType, under string, attrs ...Attr) (string, error) {
	command, err := BuildCreate(objectType, under, attrs...)
	if err != nil {
		return "", err
	}
	call := renderCall("create", attrParams([]callParam{{"objecttype", objectType}, {"under", under}}, attrs))
	handle, err := s.exec(ctx, "create", call, command, attrs)
	return trimHandle(handle), err
}

// Delete deletes an object
func (s *Session) Delete(ctx context.Context, handle string) (string, error) {
	return s.simple(ctx, "delete", verbDelete, "handle", handle)
}

// Connect connects to a chassis
func (s *Session) Connect(ctx context.Context, ipAddress string) (string, error) {
	return s.simple(ctx, "connect", verbConnect, "ipAddress", ipAddress)
}

// Disconnect disconnects from a chassis
func (s *Session) Disconnect(ctx context.Context, ipAddress string) (string, error) {
	return s.simple(ctx, "disconnect", verbDisconnect, "ipAddress", ipAddress)
}

// Reserve reserves a port location such as //10.1.1.1/1/1 and returns the
// engine's reply
func (s *Session) Reserve(ctx context.Context, location string) (string, error) {
	return s.simple(ctx, "reserve", verbReserve, "location", location)
}

// Release releases a reserved port location
func (s *Session) Release(ctx context.Context, location string) (string, error) {
	return s.simple(ctx, "release", verbRelease, "location", location)
}

// Perform runs an engine command and returns its decoded output
func (s *Session) Perform(ctx context.Context, command string, attrs ...Attr) (*tcllist.Dict, error) {
	script, err := BuildPerform(command, attrs...)
	if err != nil {
		return nil, err
	}
	call := renderCall("perform", attrParams([]callParam{{"command", command}}, attrs))
	raw, err := s.exec(ctx, "perform", call, script, attrs)
	if err != nil {
		return nil, err
	}
	return s.decode(raw)
}

func (s *Session) simple(ctx context.Context, op, verb, param, arg string) (string, error) {
	command, err := buildSimple(verb, arg)
	if err != nil {
		return "", err
	}
	return s.exec(ctx, op, renderCall(op, []callParam{{param, arg}}), command, nil)
}
