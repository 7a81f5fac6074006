package schema

import (
	"strings"

	"github.com/idryzhov/libyang/lyerr"
)

// ResultFlags mark special subtrees crossed while resolving a node-id
type ResultFlags uint8

const (
	// FlagNotification is set when the path entered a notification
	FlagNotification ResultFlags = 1 << iota
	// FlagRPCInput is set when the path entered an RPC/action input
	FlagRPCInput
	// FlagRPCOutput is set when the path entered an RPC/action output
	FlagRPCOutput
)

// ResolveNodeID resolves a schema-node-id against a schema tree.
//
// A nil ctxNode requires the absolute form (leading "/"); a non-nil
// ctxNode requires the descendant form and resolution starts at its
// children.  Unprefixed names resolve in ctxMod; prefixed names
// through ctxMod's import table.  When the current context is an RPC
// or action, the next component must literally be "input" or "output"
// and switches into that operation subtree.
//
// filter restricts the final node's type; a node that resolves but
// falls outside filter yields a denied error, distinct from the
// reference errors reported for structural failures, so callers can
// retry with different filters.
func ResolveNodeID(nodeid string, ctxNode *Node, ctxMod *Module, filter NodeKind) (*Node, ResultFlags, error) {
	var (
		flags   ResultFlags
		current NodeKind
		kind    = "absolute"
	)

	id := nodeid
	if ctxNode != nil {
		kind = "descendant"
		if strings.HasPrefix(id, "/") {
			return nil, 0, lyerr.Reference(lyerr.WithPath(nodeid),
				lyerr.WithMessagef("invalid descendant-schema-nodeid value - absolute-schema-nodeid used"))
		}
	} else {
		if !strings.HasPrefix(id, "/") {
			return nil, 0, lyerr.Reference(lyerr.WithPath(nodeid),
				lyerr.WithMessagef("invalid absolute-schema-nodeid value - missing starting \"/\""))
		}
		id = id[1:]
	}

	var extra LookupFlags
	for id != "" {
		prefix, name, rest, err := parseNodeID(id)
		if err != nil {
			return nil, 0, lyerr.Reference(lyerr.WithPath(nodeid),
				lyerr.WithMessagef("invalid %s-schema-nodeid value - unexpected end of expression", kind))
		}
		consumed := nodeid[:len(nodeid)-len(rest)]

		mod := ctxMod
		if prefix != "" {
			if mod = ctxMod.ModuleForPrefix(prefix); mod == nil {
				return nil, 0, lyerr.Reference(lyerr.WithPath(consumed),
					lyerr.WithMessagef("prefix %q not defined in module %q", prefix, ctxMod.Name))
			}
		}

		if ctxNode != nil && ctxNode.Kind&(RPC|Action) != 0 {
			// move through input/output manually
			if mod != ctxNode.Module {
				ctxNode = nil
			} else {
				switch name {
				case "input":
					ctxNode = ctxNode.Input
				case "output":
					ctxNode = ctxNode.Output
					extra = OutputOnly
				default:
					// only input or output is valid
					ctxNode = nil
				}
			}
		} else {
			ctxNode = FindChild(ctxNode, mod, name, 0, extra|NoStateCheck|WithChoice|WithCase)
			extra = 0
		}
		if ctxNode == nil {
			return nil, 0, lyerr.Reference(lyerr.WithPath(consumed),
				lyerr.WithMessagef("invalid %s-schema-nodeid value - target node not found", kind))
		}

		current = ctxNode.Kind
		switch current {
		case Notification:
			flags |= FlagNotification
		case Input:
			flags |= FlagRPCInput
		case Output:
			flags |= FlagRPCOutput
		}

		if rest == "" {
			break
		}
		if rest[0] != '/' {
			return nil, 0, lyerr.Reference(lyerr.WithPath(consumed),
				lyerr.WithMessagef("invalid %s-schema-nodeid value - missing \"/\" as node-identifier separator", kind))
		}
		id = rest[1:]
	}

	if filter != 0 && current&filter == 0 {
		return nil, 0, lyerr.Denied(lyerr.WithPath(nodeid),
			lyerr.WithMessagef("target node is a %s, not one of the expected types", current))
	}
	return ctxNode, flags, nil
}

// parseNodeID splits one "prefix:name" component off the front of id,
// stopping at the component's end.  rest starts with the unconsumed
// remainder (including any "/" separator).
func parseNodeID(id string) (prefix, name, rest string, err error) {
	first, rem, err := parseIdentifier(id)
	if err != nil {
		return "", "", "", err
	}
	if !strings.HasPrefix(rem, ":") {
		return "", first, rem, nil
	}
	name, rem, err = parseIdentifier(rem[1:])
	if err != nil {
		return "", "", "", err
	}
	return first, name, rem, nil
}

func parseIdentifier(s string) (ident, rest string, err error) {
	if s == "" || !isIdentStart(s[0]) {
		return "", "", lyerr.Syntax(lyerr.WithMessage("invalid identifier"))
	}
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:], nil
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '-' || c == '.'
}
