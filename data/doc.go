// Package data models YANG instance data: ordered trees of nodes
// bound to their schema definitions, with typed leaf values.
//
// Trees are built either programmatically through Tree.Add or loaded
// from XML documents with LoadXML, which binds elements to schema
// nodes by namespace.  Sibling order is insertion order and is
// preserved; positional path predicates count on it.
package data
