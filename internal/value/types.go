package value

// Type identifies a kind of value in the loom type system.
// The numeric values double as the wire type codes of the durable
// codec and must never be renumbered.
type Type uint8

const (
	TypeLong Type = iota
	TypeDouble
	TypeText
	TypeURI
	TypeSequence
	TypeMap
	TypeBigint
	TypeBigdec
	TypeDate
	TypeInstant
	TypeKeyword
	TypeUUID
	TypeBlob
	TypeTyped

	// TypeForeign is the code foreign values are written under.
	// Codes 14 and 15 have no builtin decoder; values carrying
	// either are reconstructed through the foreign type registry.
	TypeForeign Type = 15
)

// Boolean and node-reference values have no stored byte form of their
// own: they only ever travel as encapsulated IDs. Their codes live
// outside the 4-bit wire range.
const (
	TypeBool Type = 0xFE
	TypeNode Type = 0xFF
)

func (t Type) String() string {
	switch t {
	case TypeLong:
		return "long"
	case TypeDouble:
		return "double"
	case TypeText:
		return "text"
	case TypeURI:
		return "uri"
	case TypeSequence:
		return "sequence"
	case TypeMap:
		return "map"
	case TypeBigint:
		return "bigint"
	case TypeBigdec:
		return "bigdec"
	case TypeDate:
		return "date"
	case TypeInstant:
		return "instant"
	case TypeKeyword:
		return "keyword"
	case TypeUUID:
		return "uuid"
	case TypeBlob:
		return "blob"
	case TypeTyped:
		return "typed"
	case TypeForeign:
		return "foreign"
	case TypeBool:
		return "bool"
	case TypeNode:
		return "node"
	}

	return "unknown"
}

// IsTextual reports whether values of t reduce to a canonical string
// for index comparison purposes.
func (t Type) IsTextual() bool {
	return t == TypeText || t == TypeURI || t == TypeKeyword
}
