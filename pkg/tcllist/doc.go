// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     tcllist
// Description: Tcl list codec and engine result decoder
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

// Package tcllist reads and writes Tcl lists and turns the flat
// "-key value -key value" lists returned by the engine into ordered
// dictionaries with classified values.
//
//	d, err := tcllist.Decode("-Name {port 1} -Active true -Count 010")
//	d.Keys()                 // [Name Active Count]
//	v, _ := d.Get("Count")
//	v.Kind()                 // KindInteger
//	n, _ := v.Int()          // 10
package tcllist
