// Package guard provides the corruption reporting side of the guard marker
// layer: the installable corruption handler, caller location capture, and the
// ValidationError describing what was found.
//
// # Overview
//
// Buffers carry 32-bit guard markers (see internal/format) around their
// structure and storage. When a strict validator finds a marker or layout
// mismatch it builds a *ValidationError and calls Report, which resolves the
// caller location and invokes the installed Handler.
//
// # Handlers
//
// The default handler logs the location and terminates the process with exit
// code 2. Tests and long-running services usually install something softer:
//
//	prev := guard.SetHandler(guard.PanicHandler)
//	defer guard.SetHandler(prev)
//
// LogHandler only logs. SetHandler(nil) restores the default. The handler
// cell is an atomic pointer; the last SetHandler wins.
//
// # Build Tags
//
// Enabled is false when the module is built with the noguard tag. Buffers
// created with the process default validator then skip markers entirely and
// only check structural consistency.
package guard
