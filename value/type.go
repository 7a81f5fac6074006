package value

import "fmt"

// Type is a YANG built-in base type
type Type int

const (
	// TypeUnknown is the zero Type; no literal parses under it
	TypeUnknown Type = iota
	TypeBinary
	TypeBits
	TypeBoolean
	TypeDecimal64
	TypeEmpty
	TypeEnumeration
	TypeIdentityref
	TypeInstanceID
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeLeafref
	TypeString
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeUnion
)

func (t Type) String() string {
	switch t {
	case TypeBinary:
		return "binary"
	case TypeBits:
		return "bits"
	case TypeBoolean:
		return "boolean"
	case TypeDecimal64:
		return "decimal64"
	case TypeEmpty:
		return "empty"
	case TypeEnumeration:
		return "enumeration"
	case TypeIdentityref:
		return "identityref"
	case TypeInstanceID:
		return "instance-identifier"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeLeafref:
		return "leafref"
	case TypeString:
		return "string"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeUnion:
		return "union"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// builtins is the built-in type name table.  A name is a built-in
// only on an exact, full-length match.
var builtins = map[string]Type{
	"binary":              TypeBinary,
	"bits":                TypeBits,
	"boolean":             TypeBoolean,
	"decimal64":           TypeDecimal64,
	"empty":               TypeEmpty,
	"enumeration":         TypeEnumeration,
	"identityref":         TypeIdentityref,
	"instance-identifier": TypeInstanceID,
	"int8":                TypeInt8,
	"int16":               TypeInt16,
	"int32":               TypeInt32,
	"int64":               TypeInt64,
	"leafref":             TypeLeafref,
	"string":              TypeString,
	"uint8":               TypeUint8,
	"uint16":              TypeUint16,
	"uint32":              TypeUint32,
	"uint64":              TypeUint64,
	"union":               TypeUnion,
}

// BuiltinType returns the built-in base type named by name, or
// TypeUnknown when name is not a YANG built-in type name
func BuiltinType(name string) Type {
	return builtins[name]
}

// IsBuiltin reports whether name is a YANG built-in type name
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}
