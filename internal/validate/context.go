package validate

// CasePolicy names one of the per-bucket case transforms the
// naming-collision pass applies. "none"
// leaves the original spelling untouched.
type CasePolicy string

const (
	CasePascal CasePolicy = "pascal"
	CaseCamel  CasePolicy = "camel"
	CaseSnake  CasePolicy = "snake"
	CaseNone   CasePolicy = "none"
)

// NamingPolicy assigns a CasePolicy to each bucket of emitted identifier
// lists: classes, methods, properties, fields, enumMembers.
type NamingPolicy struct {
	Classes     CasePolicy
	Methods     CasePolicy
	Properties  CasePolicy
	Fields      CasePolicy
	EnumMembers CasePolicy
}

// DefaultNamingPolicy matches idiomatic C#: PascalCase everywhere a
// public member is emitted, fields left alone (the backend already
// treats most fields as auto-properties, so the policy bucket that
// actually fires in practice is EnumMembers/Methods/Properties/Classes).
func DefaultNamingPolicy() NamingPolicy {
	return NamingPolicy{
		Classes:     CasePascal,
		Methods:     CasePascal,
		Properties:  CasePascal,
		Fields:      CaseNone,
		EnumMembers: CasePascal,
	}
}

// Context carries the cross-pass state passes read or write: the
// reserved core-intrinsic names and the package they must resolve from,
// the configured naming policy, and the runtime mode. It holds no
// attribute target index; the attribute-collection pass resolves its
// targets within the module it is running over.
type Context struct {
	// CorePackageName is the package name TSN7440 intrinsics must
	// resolve from (the well-known core `types.d.ts`/`lang.d.ts`
	// package); empty disables the provenance check (e.g. when
	// compiling the core package itself).
	CorePackageName string

	Naming NamingPolicy

	// Runtime selects dotnet or js array emission, which in turn decides
	// whether an explicit-origin array access is a clrIndexer or falls
	// back to jsRuntimeArray.
	Runtime RuntimeMode
}

// RuntimeMode is the target runtime the backend emits for.
type RuntimeMode string

const (
	RuntimeDotnet RuntimeMode = "dotnet"
	RuntimeJS     RuntimeMode = "js"
)

// NewContext builds a Context with the given core package name and the
// default naming policy.
func NewContext(corePackageName string) *Context {
	return &Context{
		CorePackageName: corePackageName,
		Naming:          DefaultNamingPolicy(),
		Runtime:         RuntimeDotnet,
	}
}

// CoreIntrinsicNames is the reserved set TSN7440 polices:
// identifiers only the core package may declare or re-export.
var CoreIntrinsicNames = map[string]bool{
	"sbyte": true, "byte": true, "short": true, "ushort": true,
	"int": true, "uint": true, "long": true, "ulong": true,
	"float": true, "double": true,
	"ptr": true, "out": true, "ref": true, "in": true, "inref": true,
	"stackalloc": true, "trycast": true, "istype": true,
	"nameof": true, "sizeof": true, "defaultof": true,
	"asinterface": true, "thisarg": true,
}
