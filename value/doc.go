// Package value implements YANG typed values on top of the cty type
// system.
//
// The path predicate compiler hands a declared leaf type and a literal
// string to Parse and receives an immutable Value back.  Values of the
// same type support equality comparison, which is all path evaluation
// needs to match list key and leaf-list value predicates.
//
// Only built-in base types are modeled here; a typedef must be resolved
// to its base type by the caller before parsing literals against it.
package value
