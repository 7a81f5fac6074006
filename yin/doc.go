// Package yin loads YANG modules from their YIN (XML) representation.
//
// A Parser wires a schema.Loader for locating module sources to a
// schema.Context receiving the parsed modules.  LoadModule pulls the
// named module, follows its imports and includes, resolves type
// references, and runs the typedef and grouping scope checks before
// registering the module in the context.
//
// Only the statements the path engine consumes are materialized:
// module linkage, revisions, the data/RPC/notification node skeleton
// with statuses, list keys and leaf types, and the typedef and
// grouping declarations the scope checks need.  Everything else is
// skipped; unknown statements are logged and ignored.
package yin
