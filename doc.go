/*
Package libyang is a set of YANG (RFC7950) schema path libraries.

Doing the heavy lifting of path parsing, schema-node resolution and
instance-data evaluation, these libraries allow easy development of
applications that need to address nodes inside YANG-modeled trees:
schema-node-ids ("augment"/"deviation" targets), instance-identifiers
and leafref paths with predicates.

A path string is first tokenized into an immutable token expression,
then compiled against a namespace-qualified schema tree into a compact
resolved path: an ordered list of segments, each holding the matched
schema node and optional typed predicates (list keys, a 1-based
position, or a leaf-list value).  A resolved path can later be
evaluated, fully or partially, against concrete instance-data trees.

See the path, schema and data sub-directories for more information
about path compilation, schema trees and instance data.
*/
package libyang
