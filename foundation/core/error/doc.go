// Package error provides the coded error type shared by all cta packages.
//
// Package: error
// Title: cta Error Handling
// Description: A structured error carrying a code, a severity, the failing
//              operation and free-form details. Errors raised by the engine
//              keep the engine's text as their message so callers see the
//              diagnostic exactly as the engine produced it.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with codes, severity and wrapping
// - 2026-10-16 v0.2.0: Engine, bootstrap, decode and session codes
//
// Usage:
//
//	import mdwerror "github.com/msto63/cta/foundation/core/error"
//
//	err := mdwerror.New(engineText).
//		WithCode(mdwerror.CodeEngine).
//		WithOperation("stc::config")
//
//	if mdwerror.HasCode(err, mdwerror.CodeEngine) {
//		// ...
//	}
package error
