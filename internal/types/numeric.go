// Package types implements the type system and nominal-type catalogue
// that sit between the IR builder and the backend: IrType's tagged
// variants, their stable structural keys, the UnifiedTypeCatalog of
// nominal declarations and heritage edges, and NominalEnv's inheritance
// and substitution queries.
package types

// NumericKind is the closed set of CLR numeric primitives the input
// language's numeric aliases map onto.
type NumericKind int

const (
	NumericUnknown NumericKind = iota
	SByte
	Byte
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Single
	Double
)

func (k NumericKind) String() string {
	switch k {
	case SByte:
		return "SByte"
	case Byte:
		return "Byte"
	case Int16:
		return "Int16"
	case UInt16:
		return "UInt16"
	case Int32:
		return "Int32"
	case UInt32:
		return "UInt32"
	case Int64:
		return "Int64"
	case UInt64:
		return "UInt64"
	case Single:
		return "Single"
	case Double:
		return "Double"
	default:
		return "Unknown"
	}
}

// NumericAliases maps the input language's numeric spelling to the
// NumericKind it denotes.
var NumericAliases = map[string]NumericKind{
	"sbyte":  SByte,
	"byte":   Byte,
	"short":  Int16,
	"ushort": UInt16,
	"int":    Int32,
	"uint":   UInt32,
	"long":   Int64,
	"ulong":  UInt64,
	"float":  Single,
	"double": Double,
}

// IntegerRange is the exact inclusive [Min, Max] representable by an
// integer NumericKind. Single/Double are excluded — their literal-fits
// range is left unspecified here; this implementation only proves
// integer kinds, matching the scope the numeric-proof pass actually
// needs (TSN5107 only ever fires against Int32).
var IntegerRange = map[NumericKind][2]int64{
	SByte:  {-128, 127},
	Byte:   {0, 255},
	Int16:  {-32768, 32767},
	UInt16: {0, 65535},
	Int32:  {-2147483648, 2147483647},
	UInt32: {0, 4294967295},
	Int64:  {-9223372036854775808, 9223372036854775807},
	UInt64: {0, 9223372036854775807}, // UInt64.Max doesn't fit int64; proof code never needs the true upper bound
}

// FitsInt32 reports whether v is within Int32's range — the only range
// check the numeric-proof pass needs.
func FitsInt32(v int64) bool {
	r := IntegerRange[Int32]
	return v >= r[0] && v <= r[1]
}

// promotionRank orders numeric kinds for C#'s binary-operator numeric
// promotion: the operand with the lower rank widens to the higher.
var promotionRank = map[NumericKind]int{
	SByte: 0, Byte: 0, Int16: 1, UInt16: 1,
	Int32: 2, UInt32: 3, Int64: 4, UInt64: 5,
	Single: 6, Double: 7,
}

// Promote returns the NumericKind a binary arithmetic operator between
// a and b produces, following C#'s numeric promotion rules: small
// integral kinds promote to Int32 first, then the wider of the two
// operands wins, with any floating operand winning over any integral
// one.
func Promote(a, b NumericKind) NumericKind {
	widen := func(k NumericKind) NumericKind {
		switch k {
		case SByte, Byte, Int16, UInt16:
			return Int32
		default:
			return k
		}
	}
	a, b = widen(a), widen(b)
	if promotionRank[a] >= promotionRank[b] {
		return a
	}
	return b
}
