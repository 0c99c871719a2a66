package types

// GlobalClrName maps the input language's built-in/global type names to
// their CLR fully-qualified equivalent. Names requiring a
// type argument (Array, Promise, PromiseLike, Span, ptr) are handled by
// the caller, which supplies the resolved element type; this table only
// covers the non-generic scalar mappings.
var GlobalClrName = map[string]string{
	"string":  "System.String",
	"number":  "System.Double",
	"boolean": "System.Boolean",
	"void":    "System.Void",
	"any":     "System.Object",
	"unknown": "System.Object",
	"object":  "System.Object",
}

// NumericClrName maps a NumericKind to its CLR fully-qualified name.
var NumericClrName = map[NumericKind]string{
	SByte:  "System.SByte",
	Byte:   "System.Byte",
	Int16:  "System.Int16",
	UInt16: "System.UInt16",
	Int32:  "System.Int32",
	UInt32: "System.UInt32",
	Int64:  "System.Int64",
	UInt64: "System.UInt64",
	Single: "System.Single",
	Double: "System.Double",
}

// AmbientGenericNames are the generic built-ins with a fixed CLR mapping
// independent of runtime mode (Array/List resolution is runtime-mode
// dependent and handled in internal/backend instead). Map and Set are
// deliberately excluded: they are not ambient and must
// come through an import binding, so no entry here means "not global."
var AmbientGenericNames = map[string]bool{
	"Array":       true,
	"Promise":     true,
	"PromiseLike": true,
	"Span":        true,
	"ptr":         true,
}

// PromiseClrName returns the CLR name for Promise<T>/PromiseLike<T>:
// System.Threading.Tasks.Task when T is void, Task<T> otherwise.
func PromiseClrName(elementClrName string, isVoid bool) string {
	if isVoid {
		return "System.Threading.Tasks.Task"
	}
	return "System.Threading.Tasks.Task<" + elementClrName + ">"
}
