// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     cta
// Description: Session and command facade over the conformance engine
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

// Package cta drives the Spirent TestCenter Conformance engine through a
// Tcl interpreter. A Session starts the interpreter, loads the conformance
// package and turns each method call into one engine command:
//
//	s, err := cta.Open(ctx, cta.Options{APIPath: "/opt/stc/cta", LogLevel: "INFO"})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	project, _ := s.Create(ctx, "project", "")
//	_, err = s.Config(ctx, project, cta.A("Name", "smoke"))
//	attrs, err := s.GetAll(ctx, project)
//
// Every call is logged to the session log with its arguments, the engine
// command text and the raw result. Only one session may be open per
// process.
package cta
