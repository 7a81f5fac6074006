package schema

// Statement identifies a YANG statement keyword
type Statement int

const (
	StmtNone Statement = iota
	StmtAction
	StmtAnydata
	StmtAnyxml
	StmtArgument
	StmtAugment
	StmtBase
	StmtBelongsTo
	StmtBit
	StmtCase
	StmtChoice
	StmtConfig
	StmtContact
	StmtContainer
	StmtDefault
	StmtDescription
	StmtDeviate
	StmtDeviation
	StmtEnum
	StmtErrorAppTag
	StmtErrorMessage
	StmtExtension
	StmtFeature
	StmtFractionDigits
	StmtGrouping
	StmtIdentity
	StmtIfFeature
	StmtImport
	StmtInclude
	StmtInput
	StmtKey
	StmtLeaf
	StmtLeafList
	StmtLength
	StmtList
	StmtMandatory
	StmtMaxElements
	StmtMinElements
	StmtModifier
	StmtModule
	StmtMust
	StmtNamespace
	StmtNotification
	StmtOrderedBy
	StmtOrganization
	StmtOutput
	StmtPath
	StmtPattern
	StmtPosition
	StmtPrefix
	StmtPresence
	StmtRange
	StmtReference
	StmtRefine
	StmtRequireInstance
	StmtRevision
	StmtRevisionDate
	StmtRPC
	StmtStatus
	StmtSubmodule
	StmtType
	StmtTypedef
	StmtUnique
	StmtUnits
	StmtUses
	StmtValue
	StmtWhen
	StmtYangVersion
	StmtYinElement
)

// statementNames is indexed by Statement; StmtNone has no keyword
var statementNames = [...]string{
	StmtAction:          "action",
	StmtAnydata:         "anydata",
	StmtAnyxml:          "anyxml",
	StmtArgument:        "argument",
	StmtAugment:         "augment",
	StmtBase:            "base",
	StmtBelongsTo:       "belongs-to",
	StmtBit:             "bit",
	StmtCase:            "case",
	StmtChoice:          "choice",
	StmtConfig:          "config",
	StmtContact:         "contact",
	StmtContainer:       "container",
	StmtDefault:         "default",
	StmtDescription:     "description",
	StmtDeviate:         "deviate",
	StmtDeviation:       "deviation",
	StmtEnum:            "enum",
	StmtErrorAppTag:     "error-app-tag",
	StmtErrorMessage:    "error-message",
	StmtExtension:       "extension",
	StmtFeature:         "feature",
	StmtFractionDigits:  "fraction-digits",
	StmtGrouping:        "grouping",
	StmtIdentity:        "identity",
	StmtIfFeature:       "if-feature",
	StmtImport:          "import",
	StmtInclude:         "include",
	StmtInput:           "input",
	StmtKey:             "key",
	StmtLeaf:            "leaf",
	StmtLeafList:        "leaf-list",
	StmtLength:          "length",
	StmtList:            "list",
	StmtMandatory:       "mandatory",
	StmtMaxElements:     "max-elements",
	StmtMinElements:     "min-elements",
	StmtModifier:        "modifier",
	StmtModule:          "module",
	StmtMust:            "must",
	StmtNamespace:       "namespace",
	StmtNotification:    "notification",
	StmtOrderedBy:       "ordered-by",
	StmtOrganization:    "organization",
	StmtOutput:          "output",
	StmtPath:            "path",
	StmtPattern:         "pattern",
	StmtPosition:        "position",
	StmtPrefix:          "prefix",
	StmtPresence:        "presence",
	StmtRange:           "range",
	StmtReference:       "reference",
	StmtRefine:          "refine",
	StmtRequireInstance: "require-instance",
	StmtRevision:        "revision",
	StmtRevisionDate:    "revision-date",
	StmtRPC:             "rpc",
	StmtStatus:          "status",
	StmtSubmodule:       "submodule",
	StmtType:            "type",
	StmtTypedef:         "typedef",
	StmtUnique:          "unique",
	StmtUnits:           "units",
	StmtUses:            "uses",
	StmtValue:           "value",
	StmtWhen:            "when",
	StmtYangVersion:     "yang-version",
	StmtYinElement:      "yin-element",
}

var keywords = func() map[string]Statement {
	m := make(map[string]Statement, len(statementNames))
	for stmt, name := range statementNames {
		if name != "" {
			m[name] = Statement(stmt)
		}
	}
	return m
}()

func (s Statement) String() string {
	if s > StmtNone && int(s) < len(statementNames) {
		return statementNames[s]
	}
	return "unknown"
}

// MatchKeyword matches a statement keyword at the start of s,
// returning the keyword and the number of bytes consumed.  A keyword
// matches only as a complete identifier: the maximal identifier run at
// the front of s must equal the keyword exactly, so "inputx" matches
// nothing rather than "input".  This full-identifier rule gives the
// same outcomes as longest-match-wins with a trailing-character check.
func MatchKeyword(s string) (Statement, int) {
	i := 0
	for i < len(s) && (isIdentChar(s[i]) && s[i] != '.') {
		i++
	}
	if stmt, ok := keywords[s[:i]]; ok {
		return stmt, i
	}
	return StmtNone, 0
}

// Keywords returns every statement keyword, for completion support
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for _, name := range statementNames {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
