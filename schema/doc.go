// Package schema provides the YANG schema tree model and resolvers.
//
// Schema objects are constructed in terms of modules and nodes.  A
// Module holds its namespace, prefix, import and include bindings and
// the top-level data, RPC and notification nodes; a Node carries its
// nodetype, its owning module, a navigational parent link and the
// nodetype-specific child collections.  Schema trees are built once,
// then frozen: nothing in this package mutates a tree after
// construction, so concurrent readers are safe.
//
// # Node resolution
//
// ResolveNodeID resolves slash-separated, prefix-qualified node-id
// strings (no predicates) against a schema tree.  It is the resolver
// used for schema-to-schema references such as "augment" and
// "deviation" targets, and reports via result flags whether the
// resolved path crossed into a notification or an RPC input or output
// subtree.  FindChild is the underlying child lookup, with option
// flags controlling choice/case transparency, input versus output
// traversal and status visibility.
//
// # Scope checking
//
// CheckTypedefs and CheckGroupings verify that no two visible typedef
// or grouping names collide within one module: against built-in type
// names, between siblings, between an ancestor and a descendant
// (shadowing is forbidden), and across top-level and
// submodule-included definitions.
//
// # Module loading
//
// Loader locates module source text using two ordered strategies, an
// import callback and local search directories, tried in a
// caller-configured priority order.
package schema
