package schema

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idryzhov/libyang/lyerr"
)

func TestCheckEnumName(t *testing.T) {
	check := assert.New(t)
	check.NoError(CheckEnumName("up", nil))
	check.NoError(CheckEnumName("mid space ok", nil))

	check.True(lyerr.IsKind(CheckEnumName("", nil), lyerr.KindSyntax))
	check.True(lyerr.IsKind(CheckEnumName(" up", nil), lyerr.KindSyntax))
	check.True(lyerr.IsKind(CheckEnumName("up ", nil), lyerr.KindSyntax))

	// control characters warn but do not fail
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	check.NoError(CheckEnumName("a\tb", log))
	check.Contains(buf.String(), "control characters")
}

func TestCheckRevisionDate(t *testing.T) {
	check := assert.New(t)
	check.NoError(CheckRevisionDate("2020-02-29"))
	check.NoError(CheckRevisionDate("2018-12-01"))

	for _, bad := range []string{
		"", "2018-1-01", "2018/12/01", "18-12-01", "2018-13-01",
		"2018-02-29", "2018-02-31", "abcd-ef-gh", "2018-12-011",
	} {
		check.True(lyerr.IsKind(CheckRevisionDate(bad), lyerr.KindSyntax), "date %q", bad)
	}
}

func TestSortRevisions(t *testing.T) {
	revs := []string{"2019-01-01", "2021-06-30", "2020-02-02"}
	SortRevisions(revs)
	assert.Equal(t, []string{"2021-06-30", "2020-02-02", "2019-01-01"}, revs)
}

func TestCheckPrefix(t *testing.T) {
	check := assert.New(t)
	imports := []Import{{Prefix: "ot", Module: &Module{Name: "other"}}}

	check.NoError(CheckPrefix("ex", imports, "new"))
	check.True(lyerr.IsKind(CheckPrefix("ex", imports, "ex"), lyerr.KindDuplicateName))
	check.True(lyerr.IsKind(CheckPrefix("ex", imports, "ot"), lyerr.KindDuplicateName))
}

func TestCheckModuleSource(t *testing.T) {
	check := assert.New(t)
	mod := &Module{Name: "example", Revisions: []string{"2020-02-02"}}

	check.NoError(CheckModuleSource(mod, "example", "2020-02-02", "", nil))
	check.NoError(CheckModuleSource(mod, "", "", "", nil))

	err := CheckModuleSource(mod, "different", "", "", nil)
	check.True(lyerr.IsKind(err, lyerr.KindDenied))
	err = CheckModuleSource(mod, "example", "1999-09-09", "", nil)
	check.True(lyerr.IsKind(err, lyerr.KindDenied))

	// filename mismatches warn but never fail
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	check.NoError(CheckModuleSource(mod, "example", "", "/models/other-name.yin", log))
	check.Contains(buf.String(), "does not match module name")

	buf.Reset()
	check.NoError(CheckModuleSource(mod, "example", "", "/models/example@1999-09-09.yin", log))
	check.Contains(buf.String(), "does not match module revision")

	buf.Reset()
	check.NoError(CheckModuleSource(mod, "example", "", "/models/example@2020-02-02.yin", log))
	check.Empty(buf.String())
}

func TestCheckSubmoduleSource(t *testing.T) {
	check := assert.New(t)
	sub := &Submodule{Name: "m-sub", BelongsTo: "m"}
	check.NoError(CheckSubmoduleSource(sub, "m"))
	check.True(lyerr.IsKind(CheckSubmoduleSource(sub, "other"), lyerr.KindReference))
}
