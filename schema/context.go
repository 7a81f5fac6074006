package schema

import "github.com/idryzhov/libyang/lyerr"

// Context is the set of loaded modules.  Modules are added during
// schema assembly and the context is then frozen for the lifetime of
// any compiled path referencing its trees.
type Context struct {
	modules []*Module
}

// AddModule adds m to the context.  A module with the same name and
// revision as an existing one is rejected.
func (c *Context) AddModule(m *Module) error {
	for _, have := range c.modules {
		if have.Name == m.Name && have.Revision() == m.Revision() {
			return lyerr.DuplicateName(lyerr.WithMessagef(
				"module %q revision %q already present in the context", m.Name, m.Revision()))
		}
	}
	c.modules = append(c.modules, m)
	return nil
}

// Module returns the latest revision of the module named name, or nil
func (c *Context) Module(name string) *Module {
	var latest *Module
	for _, m := range c.modules {
		if m.Name != name {
			continue
		}
		if latest == nil || m.Revision() > latest.Revision() {
			latest = m
		}
	}
	return latest
}

// ModuleRevision returns the module with the exact name and revision,
// or nil
func (c *Context) ModuleRevision(name, revision string) *Module {
	for _, m := range c.modules {
		if m.Name == name && m.Revision() == revision {
			return m
		}
	}
	return nil
}

// ModuleByNamespace returns the module with the given XML namespace,
// or nil.  Used by the XML prefix-resolution format, where prefixes
// map to namespaces rather than import aliases.
func (c *Context) ModuleByNamespace(ns string) *Module {
	for _, m := range c.modules {
		if m.Namespace == ns {
			return m
		}
	}
	return nil
}

// Modules returns the loaded modules in load order
func (c *Context) Modules() []*Module { return c.modules }
