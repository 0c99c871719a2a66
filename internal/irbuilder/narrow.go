package irbuilder

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/binder"
	"github.com/tsoniclang/tsonic/internal/types"
)

// narrowEnv is the lexically-scoped typeEnv flow narrowing populates:
// a stack of frames, each mapping a DeclId to the
// refined IrType that applies within the IR sub-tree currently being
// converted.
type narrowEnv struct {
	frames []map[binder.DeclId]types.IrType
}

func newNarrowEnv() *narrowEnv {
	return &narrowEnv{frames: []map[binder.DeclId]types.IrType{{}}}
}

func (n *narrowEnv) push(narrowings map[binder.DeclId]types.IrType) {
	n.frames = append(n.frames, narrowings)
}

func (n *narrowEnv) pop() {
	n.frames = n.frames[:len(n.frames)-1]
}

func (n *narrowEnv) lookup(id binder.DeclId) (types.IrType, bool) {
	for i := len(n.frames) - 1; i >= 0; i-- {
		if t, ok := n.frames[i][id]; ok {
			return t, true
		}
	}
	return nil, false
}

// narrowingsFromTest extracts the TypeNarrowing set a truthy evaluation
// of test establishes, : `x instanceof T` and
// `istype<T>(x)` contribute a narrowing for x's DeclId; `A && B`
// collects narrowings from both sides (both must be true for either
// narrowing to hold); `A || B` collects none, since only one side is
// known true.
func (b *Builder) narrowingsFromTest(test ast.Expression) map[binder.DeclId]types.IrType {
	switch e := test.(type) {
	case *ast.BinaryExpression:
		if e.Op == "instanceof" {
			if id, ok := e.Left.(*ast.Identifier); ok {
				if declID, ok := b.identDeclId(id); ok {
					if typeName, ok := e.Right.(*ast.Identifier); ok {
						return map[binder.DeclId]types.IrType{declID: &types.ReferenceType{Name: typeName.Name}}
					}
				}
			}
		}
		return nil

	case *ast.CallExpression:
		callee, ok := e.Callee.(*ast.Identifier)
		if !ok || callee.Name != "istype" || len(e.TypeArgs) != 1 || len(e.Args) != 1 {
			return nil
		}
		id, ok := e.Args[0].(*ast.Identifier)
		if !ok {
			return nil
		}
		declID, ok := b.identDeclId(id)
		if !ok {
			return nil
		}
		return map[binder.DeclId]types.IrType{declID: b.resolveType(e.TypeArgs[0])}

	case *ast.LogicalExpression:
		switch e.Op {
		case "&&":
			merged := map[binder.DeclId]types.IrType{}
			for k, v := range b.narrowingsFromTest(e.Left) {
				merged[k] = v
			}
			for k, v := range b.narrowingsFromTest(e.Right) {
				merged[k] = v
			}
			return merged
		default: // "||", "??": neither side is unconditionally true
			return nil
		}

	case *ast.ParenWrap:
		return b.narrowingsFromTest(e.Inner)

	default:
		return nil
	}
}
