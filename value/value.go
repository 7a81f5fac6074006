package value

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/idryzhov/libyang/lyerr"
)

// Value is an immutable typed value.  The zero Value is the null value
// of TypeUnknown and compares equal only to itself.
type Value struct {
	typ Type
	v   cty.Value
}

// Type returns the declared base type the value was parsed under
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v is the zero Value
func (v Value) IsNull() bool { return v.typ == TypeUnknown }

// Equal reports whether v and o were parsed under the same base type
// and hold the same value
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	if v.typ == TypeUnknown {
		return true
	}
	return v.v.RawEquals(o.v)
}

// String returns the canonical lexical form of the value
func (v Value) String() string {
	switch {
	case v.typ == TypeUnknown:
		return ""
	case v.v.Type() == cty.String:
		return v.v.AsString()
	case v.v.Type() == cty.Bool:
		return strconv.FormatBool(v.v.True())
	case v.v.Type() == cty.Number:
		return v.v.AsBigFloat().Text('f', -1)
	default:
		return v.v.GoString()
	}
}

var intWidth = map[Type]int{
	TypeInt8:   8,
	TypeInt16:  16,
	TypeInt32:  32,
	TypeInt64:  64,
	TypeUint8:  8,
	TypeUint16: 16,
	TypeUint32: 32,
	TypeUint64: 64,
}

// Parse parses literal into a typed value according to the declared
// base type t.  A literal that does not conform to t yields a
// validation error.
func Parse(t Type, literal string) (Value, error) {
	switch t {
	case TypeString, TypeBinary, TypeBits, TypeEnumeration, TypeIdentityref, TypeInstanceID:
		// lexical types; stored verbatim, compared byte for byte
		return Value{typ: t, v: cty.StringVal(literal)}, nil

	case TypeBoolean:
		switch literal {
		case "true":
			return Value{typ: t, v: cty.True}, nil
		case "false":
			return Value{typ: t, v: cty.False}, nil
		}
		return Value{}, lyerr.Validation(WithInvalidLiteral(t, literal))

	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		i, err := strconv.ParseInt(literal, 10, intWidth[t])
		if err != nil {
			return Value{}, lyerr.Validation(WithInvalidLiteral(t, literal))
		}
		return Value{typ: t, v: cty.NumberIntVal(i)}, nil

	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		u, err := strconv.ParseUint(literal, 10, intWidth[t])
		if err != nil {
			return Value{}, lyerr.Validation(WithInvalidLiteral(t, literal))
		}
		return Value{typ: t, v: cty.NumberUIntVal(u)}, nil

	case TypeDecimal64:
		if !validDecimal(literal) {
			return Value{}, lyerr.Validation(WithInvalidLiteral(t, literal))
		}
		v, err := cty.ParseNumberVal(literal)
		if err != nil {
			return Value{}, lyerr.Validation(WithInvalidLiteral(t, literal))
		}
		return Value{typ: t, v: v}, nil

	case TypeEmpty:
		if literal != "" {
			return Value{}, lyerr.Validation(WithInvalidLiteral(t, literal))
		}
		return Value{typ: t, v: cty.StringVal("")}, nil

	case TypeLeafref, TypeUnion:
		// must be resolved to a concrete base type before parsing
		return Value{}, lyerr.Validation(
			lyerr.WithMessagef("cannot parse literal against unresolved %s type", t))

	default:
		return Value{}, lyerr.Validation(
			lyerr.WithMessagef("cannot parse literal against unknown type"))
	}
}

// WithInvalidLiteral is a lyerr option reporting an invalid literal
// for the given type
func WithInvalidLiteral(t Type, literal string) lyerr.Option {
	return lyerr.WithMessagef("invalid value %q for type %s", literal, t)
}

// validDecimal accepts the decimal64 lexical form: an optionally
// signed decimal number with at most 18 fraction digits
func validDecimal(s string) bool {
	if s == "" {
		return false
	}
	body := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	intPart, frac, hasDot := strings.Cut(body, ".")
	if intPart == "" || !digitsOnly(intPart) {
		return false
	}
	if hasDot && (frac == "" || len(frac) > 18 || !digitsOnly(frac)) {
		return false
	}
	return true
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
