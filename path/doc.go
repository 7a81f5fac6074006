// Package path implements the YANG path language: parsing of node-id,
// instance-identifier and leafref path strings, compilation against a
// schema tree, and evaluation against instance-data trees.
//
// A path string is first parsed into an immutable token Expr under one
// of several grammar variants (absolute or descendant form, optional
// or mandatory prefixes, plain or leafref predicates).  Compile then
// resolves each step against the schema tree, threading an explicit
// token cursor so predicates and nested forms re-enter cleanly, and
// produces a Path: an ordered segment list referencing schema nodes
// with typed predicates.  Eval and EvalPartial walk a data tree
// following a compiled Path.
//
// Compiled paths hold weak references into the schema tree they were
// compiled against; the schema tree must outlive every Path compiled
// from it.  Dup produces an independent deep copy safe to hand to
// another goroutine.
package path
