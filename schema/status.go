package schema

import "github.com/idryzhov/libyang/lyerr"

// CheckStatus verifies that a definition with status s1 in mod1 may
// reference a definition with status s2 in mod2.  Within a single
// module, a current definition must not reference a deprecated or
// obsolete one and a deprecated definition must not reference an
// obsolete one.  References across modules are never restricted.
func CheckStatus(s1 Status, mod1 *Module, name1 string, s2 Status, mod2 *Module, name2 string) error {
	if s1 < s2 && mod1 == mod2 {
		return lyerr.Denied(lyerr.WithMessagef(
			"a %s definition %q is not allowed to reference %s definition %q",
			s1, name1, s2, name2))
	}
	return nil
}
