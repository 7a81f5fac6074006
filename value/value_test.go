package value

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idryzhov/libyang/lyerr"
)

func TestBuiltinType(t *testing.T) {
	for _, tc := range []struct {
		name string
		want Type
	}{
		{name: "string", want: TypeString},
		{name: "int8", want: TypeInt8},
		{name: "int16", want: TypeInt16},
		{name: "int32", want: TypeInt32},
		{name: "int64", want: TypeInt64},
		{name: "uint8", want: TypeUint8},
		{name: "uint64", want: TypeUint64},
		{name: "boolean", want: TypeBoolean},
		{name: "decimal64", want: TypeDecimal64},
		{name: "instance-identifier", want: TypeInstanceID},
		{name: "leafref", want: TypeLeafref},
		{name: "union", want: TypeUnion},
		{name: "empty", want: TypeEmpty},

		// a keyword matches only as a complete identifier
		{name: "strin", want: TypeUnknown},
		{name: "stringx", want: TypeUnknown},
		{name: "int", want: TypeUnknown},
		{name: "in", want: TypeUnknown},
		{name: "", want: TypeUnknown},
		{name: "String", want: TypeUnknown},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuiltinType(tc.name))
			assert.Equal(t, tc.want != TypeUnknown, IsBuiltin(tc.name))
		})
	}
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		typ     Type
		literal string
		hasErr  bool
		str     string
	}{
		{typ: TypeString, literal: "hello", str: "hello"},
		{typ: TypeString, literal: "", str: ""},
		{typ: TypeBoolean, literal: "true", str: "true"},
		{typ: TypeBoolean, literal: "false", str: "false"},
		{typ: TypeBoolean, literal: "TRUE", hasErr: true},
		{typ: TypeBoolean, literal: "1", hasErr: true},
		{typ: TypeInt8, literal: "-128", str: "-128"},
		{typ: TypeInt8, literal: "127", str: "127"},
		{typ: TypeInt8, literal: "128", hasErr: true},
		{typ: TypeInt32, literal: "42", str: "42"},
		{typ: TypeInt32, literal: "forty-two", hasErr: true},
		{typ: TypeUint16, literal: "65535", str: "65535"},
		{typ: TypeUint16, literal: "65536", hasErr: true},
		{typ: TypeUint16, literal: "-1", hasErr: true},
		{typ: TypeUint64, literal: "18446744073709551615", str: "18446744073709551615"},
		{typ: TypeDecimal64, literal: "3.14", str: "3.14"},
		{typ: TypeDecimal64, literal: "-0.5", str: "-0.5"},
		{typ: TypeDecimal64, literal: "10", str: "10"},
		{typ: TypeDecimal64, literal: ".5", hasErr: true},
		{typ: TypeDecimal64, literal: "1.", hasErr: true},
		{typ: TypeDecimal64, literal: "1e3", hasErr: true},
		{typ: TypeEmpty, literal: "", str: ""},
		{typ: TypeEmpty, literal: "x", hasErr: true},
		{typ: TypeEnumeration, literal: "up", str: "up"},
		{typ: TypeLeafref, literal: "x", hasErr: true},
		{typ: TypeUnion, literal: "x", hasErr: true},
		{typ: TypeUnknown, literal: "x", hasErr: true},
	} {
		t.Run(fmt.Sprintf("%s/%s", tc.typ, tc.literal), func(t *testing.T) {
			check := assert.New(t)
			v, err := Parse(tc.typ, tc.literal)
			if tc.hasErr {
				check.Error(err)
				check.True(lyerr.IsKind(err, lyerr.KindValidation))
				return
			}
			require.NoError(t, err)
			check.Equal(tc.typ, v.Type())
			check.Equal(tc.str, v.String())
		})
	}
}

func TestEqual(t *testing.T) {
	check := assert.New(t)

	a, err := Parse(TypeInt32, "42")
	require.NoError(t, err)
	b, err := Parse(TypeInt32, "42")
	require.NoError(t, err)
	c, err := Parse(TypeInt32, "43")
	require.NoError(t, err)
	check.True(a.Equal(b))
	check.False(a.Equal(c))

	// same lexical form under a different type never compares equal
	s, err := Parse(TypeString, "42")
	require.NoError(t, err)
	check.False(a.Equal(s))

	// zero values
	check.True(Value{}.Equal(Value{}))
	check.False(a.Equal(Value{}))
	check.True(Value{}.IsNull())
	check.False(a.IsNull())
}
