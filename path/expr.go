package path

import (
	"fmt"
	"strings"

	"github.com/idryzhov/libyang/lyerr"
)

// TokenKind identifies a lexical token of the path language.
type TokenKind int

const (
	// TokSlash is the step separator '/'.
	TokSlash TokenKind = iota
	// TokBracketOpen opens a predicate.
	TokBracketOpen
	// TokBracketClose closes a predicate.
	TokBracketClose
	// TokEquals separates a predicate subject from its value.
	TokEquals
	// TokDot is the leaf-list self reference '.'.
	TokDot
	// TokDotDot is the parent step '..'.
	TokDotDot
	// TokNameTest is an optionally prefixed identifier.
	TokNameTest
	// TokNumber is an unsigned decimal integer.
	TokNumber
	// TokLiteral is a single- or double-quoted string; Text carries
	// the content without the surrounding quotes.
	TokLiteral
	// TokCurrent is the current() function call.
	TokCurrent
)

var tokenKindNames = map[TokenKind]string{
	TokSlash:        "/",
	TokBracketOpen:  "[",
	TokBracketClose: "]",
	TokEquals:       "=",
	TokDot:          ".",
	TokDotDot:       "..",
	TokNameTest:     "name",
	TokNumber:       "number",
	TokLiteral:      "literal",
	TokCurrent:      "current()",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical token with its source position.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// Expr is an immutable tokenized path expression.  It retains the
// original source string for error reporting and serialization.
type Expr struct {
	src  string
	toks []Token
}

// String returns the original source the expression was parsed from.
func (e *Expr) String() string { return e.src }

// Len returns the number of tokens.
func (e *Expr) Len() int { return len(e.toks) }

// Token returns the i-th token.  It panics if i is out of range.
func (e *Expr) Token(i int) Token { return e.toks[i] }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

func syntaxAt(src string, pos int, format string, args ...interface{}) error {
	return lyerr.Syntax(
		lyerr.WithMessagef(format, args...),
		lyerr.WithPath(src[pos:]),
	)
}

// scan tokenizes a path string.  It performs no grammar checking
// beyond token shape; Parse applies the grammar.
func scan(src string) (*Expr, error) {
	e := &Expr{src: src}
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/':
			e.push(TokSlash, "/", i)
			i++
		case c == '[':
			e.push(TokBracketOpen, "[", i)
			i++
		case c == ']':
			e.push(TokBracketClose, "]", i)
			i++
		case c == '=':
			e.push(TokEquals, "=", i)
			i++
		case c == '.':
			if i+1 < len(src) && src[i+1] == '.' {
				e.push(TokDotDot, "..", i)
				i += 2
			} else {
				e.push(TokDot, ".", i)
				i++
			}
		case c == '\'' || c == '"':
			end := strings.IndexByte(src[i+1:], c)
			if end < 0 {
				return nil, syntaxAt(src, i, "unterminated string literal")
			}
			e.push(TokLiteral, src[i+1:i+1+end], i)
			i += end + 2
		case c >= '0' && c <= '9':
			j := i
			for j < len(src) && src[j] >= '0' && src[j] <= '9' {
				j++
			}
			e.push(TokNumber, src[i:j], i)
			i = j
		case isIdentStart(c):
			j := i
			for j < len(src) && isIdentChar(src[j]) {
				j++
			}
			name := src[i:j]
			// A prefixed name test consumes the colon and the
			// second identifier as one token.
			if j < len(src) && src[j] == ':' {
				k := j + 1
				if k >= len(src) || !isIdentStart(src[k]) {
					return nil, syntaxAt(src, j, "invalid identifier character %q", src[j:])
				}
				for k < len(src) && isIdentChar(src[k]) {
					k++
				}
				e.push(TokNameTest, src[i:k], i)
				i = k
				break
			}
			if name == "current" {
				if rest, ok := matchCall(src[j:]); ok {
					e.push(TokCurrent, "current()", i)
					i = j + rest
					break
				}
			}
			e.push(TokNameTest, name, i)
			i = j
		default:
			return nil, syntaxAt(src, i, "invalid character %q", c)
		}
	}
	return e, nil
}

// matchCall matches an empty argument list "()" with optional
// interior whitespace, returning the number of bytes consumed.
func matchCall(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != '(' {
		return 0, false
	}
	i++
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != ')' {
		return 0, false
	}
	return i + 1, true
}

func (e *Expr) push(k TokenKind, text string, pos int) {
	e.toks = append(e.toks, Token{Kind: k, Text: text, Pos: pos})
}

// splitNameTest splits a TokNameTest text into its prefix (empty when
// absent) and local name.
func splitNameTest(text string) (prefix, name string) {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		return text[:i], text[i+1:]
	}
	return "", text
}
