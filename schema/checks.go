package schema

import (
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/idryzhov/libyang/lyerr"
)

// CheckEnumName validates an enum value name.  Zero-length names and
// names with surrounding whitespace are errors; control characters are
// reported as a warning through log and do not fail the check.
func CheckEnumName(name string, log *slog.Logger) error {
	if name == "" {
		return lyerr.Syntax(lyerr.WithMessage("enum name must not be zero-length"))
	}
	if unicode.IsSpace(rune(name[0])) || unicode.IsSpace(rune(name[len(name)-1])) {
		return lyerr.Syntax(lyerr.WithMessagef(
			"enum name must not have any leading or trailing whitespace (%q)", name))
	}
	for i, r := range name {
		if unicode.IsControl(r) {
			if log == nil {
				log = slog.Default()
			}
			log.Warn("control characters in enum name should be avoided",
				"name", name, "position", i+1)
			break
		}
	}
	return nil
}

// CheckRevisionDate validates a revision date in YYYY-MM-DD form,
// including calendar validity (e.g. 2018-02-29 is rejected)
func CheckRevisionDate(date string) error {
	if len(date) != 10 {
		return lyerr.Syntax(lyerr.WithMessagef("invalid revision date %q", date))
	}
	for i := 0; i < len(date); i++ {
		if i == 4 || i == 7 {
			if date[i] != '-' {
				return lyerr.Syntax(lyerr.WithMessagef("invalid revision date %q", date))
			}
		} else if date[i] < '0' || date[i] > '9' {
			return lyerr.Syntax(lyerr.WithMessagef("invalid revision date %q", date))
		}
	}
	// time.Parse normalizes invalid dates instead of rejecting them,
	// so compare the round trip
	tm, err := time.Parse("2006-01-02", date)
	if err != nil || tm.Format("2006-01-02") != date {
		return lyerr.Syntax(lyerr.WithMessagef("invalid revision date %q", date))
	}
	return nil
}

// SortRevisions orders revision dates newest first
func SortRevisions(revs []string) {
	sort.Sort(sort.Reverse(sort.StringSlice(revs)))
}

// CheckPrefix verifies that prefix does not collide with the module's
// own prefix or with the prefix of any existing import
func CheckPrefix(modPrefix string, imports []Import, prefix string) error {
	if modPrefix == prefix {
		return lyerr.DuplicateName(lyerr.WithMessagef(
			"prefix %q already used as module prefix", prefix))
	}
	for _, imp := range imports {
		if imp.Prefix == prefix {
			return lyerr.DuplicateName(lyerr.WithMessagef(
				"prefix %q already used to import %q module", prefix, imp.Module.Name))
		}
	}
	return nil
}

// CheckModuleSource verifies a loaded module against what the caller
// asked the loader for.  Name and revision mismatches are errors; a
// filename that does not match the module name or revision is only
// reported as a warning through log.
func CheckModuleSource(mod *Module, wantName, wantRevision, path string, log *slog.Logger) error {
	if wantName != "" && mod.Name != wantName {
		return lyerr.Denied(lyerr.WithMessagef(
			"unexpected module %q parsed instead of %q", mod.Name, wantName))
	}
	if wantRevision != "" && mod.Revision() != wantRevision {
		return lyerr.Denied(lyerr.WithMessagef(
			"module %q parsed with the wrong revision (%q instead of %q)",
			mod.Name, mod.Revision(), wantRevision))
	}
	if path != "" {
		if log == nil {
			log = slog.Default()
		}
		checkSourceFilename(mod, path, log)
	}
	return nil
}

// CheckSubmoduleSource verifies that an included submodule belongs-to
// the module that includes it
func CheckSubmoduleSource(submod *Submodule, mainName string) error {
	if submod.BelongsTo != mainName {
		return lyerr.Reference(lyerr.WithMessagef(
			"included %q submodule from %q belongs-to a different module %q",
			submod.Name, mainName, submod.BelongsTo))
	}
	return nil
}

func checkSourceFilename(mod *Module, path string, log *slog.Logger) {
	filename := path
	if i := strings.LastIndexByte(filename, '/'); i >= 0 {
		filename = filename[i+1:]
	}
	base := filename
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	name, rev, hasRev := strings.Cut(base, "@")
	if name != mod.Name {
		log.Warn("file name does not match module name",
			"filename", filename, "module", mod.Name)
		return
	}
	if hasRev && rev != mod.Revision() {
		log.Warn("file name does not match module revision",
			"filename", filename, "revision", mod.Revision())
	}
}
