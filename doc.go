// Package luneffi is an embedded foreign-function-interface bridge: it lets a
// dynamically-typed scripting runtime load native shared libraries, resolve
// exported symbols, and invoke them -- including variadic C functions -- with
// full control over calling convention, argument marshalling, result
// marshalling, and script-provided native callbacks.
//
// The host scripting runtime is not part of this package. luneffi only
// defines the small Value sum type and the Runtime collaborator interface
// (value.go) that a host embeds against; everything else --
// value representation, garbage collection, the cdef declaration parser --
// is the host's problem.
package luneffi

// Verbose gates non-essential diagnostic tracing in the loader (library
// open/close) and the callback engine (closure creation/teardown). Mirrors
// flapc's VerboseMode global.
var Verbose bool
