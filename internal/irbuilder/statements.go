package irbuilder

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

func (b *Builder) convertBlock(blk *ast.BlockStatement) *ir.BlockStmt {
	if blk == nil {
		return &ir.BlockStmt{}
	}
	out := &ir.BlockStmt{}
	for _, s := range blk.Statements {
		saved := b.extraDecls
		b.extraDecls = nil
		converted := b.convertStatement(s)
		out.Statements = append(out.Statements, b.extraDecls...)
		if converted != nil {
			out.Statements = append(out.Statements, converted)
		}
		b.extraDecls = saved
	}
	return out
}

// convertStatement converts one AST statement to its IR form, or
// returns nil when the statement is consumed without emitting anything
// (the struct/Struct marker interface, ambient/empty statements).
// Synthetic declarations produced along the way are appended to
// b.extraDecls for the caller to splice in immediately before the
// returned statement.
func (b *Builder) convertStatement(stmt ast.Statement) ir.Statement {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		return b.convertVariableDeclaration(s)

	case *ast.FunctionDeclaration:
		return &ir.FunctionDecl{
			Name:        s.Name,
			TypeParams:  typeParamNames(s.TypeParams),
			Params:      b.convertParams(s.Params),
			ReturnType:  b.resolveType(s.ReturnType),
			Body:        b.convertBlock(s.Body),
			IsAsync:     s.IsAsync,
			IsGenerator: s.IsGenerator,
			Exported:    s.Exported,
			Span:        b.span(s),
		}

	case *ast.ClassDeclaration:
		return b.convertClassDeclaration(s)

	case *ast.InterfaceDeclaration:
		return b.convertInterfaceDeclaration(s)

	case *ast.EnumDeclaration:
		members := make([]ir.EnumMember, len(s.Members))
		for i, m := range s.Members {
			members[i] = ir.EnumMember{Name: m.Name, Value: b.convertOptionalExpr(m.Value)}
		}
		return &ir.EnumDecl{Name: s.Name, Members: members, Exported: s.Exported, Span: b.span(s)}

	case *ast.TypeAliasDeclaration:
		return b.convertTypeAlias(s)

	case *ast.ExpressionStatement:
		return &ir.ExprStmt{Expr: b.convertExpr(s.Expr)}

	case *ast.BlockStatement:
		return b.convertBlock(s)

	case *ast.IfStatement:
		test := b.convertExpr(s.Test)
		narrowings := b.narrowingsFromTest(s.Test)
		b.narrowing.push(narrowings)
		then := b.convertAsBlock(s.Then)
		b.narrowing.pop()
		var els ir.Statement
		if s.Else != nil {
			els = b.convertStatement(s.Else)
		}
		return &ir.IfStmt{Test: test, Then: then, Else: els}

	case *ast.WhileStatement:
		return &ir.WhileStmt{Test: b.convertExpr(s.Test), Body: b.convertAsBlock(s.Body), DoWhile: s.DoWhile}

	case *ast.ForStatement:
		var init ir.Statement
		if s.Init != nil {
			init = b.convertStatement(s.Init)
		}
		var update ir.Expression
		if s.Update != nil {
			update = b.convertExpr(s.Update)
		}
		var test ir.Expression
		if s.Test != nil {
			test = b.convertExpr(s.Test)
		}
		return &ir.ForStmt{Init: init, Test: test, Update: update, Body: b.convertAsBlock(s.Body)}

	case *ast.ForOfStatement:
		return &ir.ForOfStmt{
			DeclKind:  ir.DeclKind(s.DeclKind),
			Declaring: s.Declaring,
			Name:      s.Name,
			Type:      b.resolveType(s.Type),
			Iterable:  b.convertExpr(s.Iterable),
			Body:      b.convertAsBlock(s.Body),
			IsAwaitOf: s.IsAwaitOf,
		}

	case *ast.ForInStatement:
		return &ir.ForInStmt{
			DeclKind:  ir.DeclKind(s.DeclKind),
			Declaring: s.Declaring,
			Name:      s.Name,
			Object:    b.convertExpr(s.Object),
			Body:      b.convertAsBlock(s.Body),
		}

	case *ast.SwitchStatement:
		cases := make([]ir.SwitchCase, len(s.Cases))
		for i, c := range s.Cases {
			stmts := make([]ir.Statement, 0, len(c.Statements))
			for _, cs := range c.Statements {
				if conv := b.convertStatement(cs); conv != nil {
					stmts = append(stmts, conv)
				}
			}
			cases[i] = ir.SwitchCase{Test: b.convertOptionalExpr(c.Test), Statements: stmts}
		}
		return &ir.SwitchStmt{Discriminant: b.convertExpr(s.Discriminant), Cases: cases}

	case *ast.TryStatement:
		t := &ir.TryStmt{Block: b.convertBlock(s.Block)}
		if s.Catch != nil {
			t.Catch = &ir.CatchClause{Param: s.Catch.Param, Type: b.resolveType(s.Catch.Type), Body: b.convertBlock(s.Catch.Body)}
		}
		if s.Finally != nil {
			t.Finally = b.convertBlock(s.Finally)
		}
		return t

	case *ast.ThrowStatement:
		return &ir.ThrowStmt{Argument: b.convertExpr(s.Argument)}

	case *ast.ReturnStatement:
		return &ir.ReturnStmt{Argument: b.convertOptionalExpr(s.Argument)}

	case *ast.BreakStatement:
		return &ir.BreakStmt{}

	case *ast.ContinueStatement:
		return &ir.ContinueStmt{}

	case *ast.EmptyStatement:
		return nil

	case *ast.ImportStatement, *ast.ReExportStatement:
		// Consumed by internal/modgraph for dependency edges; imports
		// contribute no IR statement of their own.
		return nil

	default:
		return nil
	}
}

func (b *Builder) convertAsBlock(s ast.Statement) *ir.BlockStmt {
	if blk, ok := s.(*ast.BlockStatement); ok {
		return b.convertBlock(blk)
	}
	out := &ir.BlockStmt{}
	if conv := b.convertStatement(s); conv != nil {
		out.Statements = append(out.Statements, conv)
	}
	return out
}

func (b *Builder) convertOptionalExpr(e ast.Expression) ir.Expression {
	if e == nil {
		return nil
	}
	return b.convertExpr(e)
}

// convertVariableDeclaration implements generics value lowering
//: a declarator whose binder-resolved declaration is a
// supported generic function/arrow value becomes an IrFunctionDeclaration
// instead of a field in the VarDecl's declarator list.
func (b *Builder) convertVariableDeclaration(s *ast.VariableDeclaration) ir.Statement {
	var declarators []ir.VarDeclarator
	var generic *ir.FunctionDecl

	for i, d := range s.Declarators {
		declID, hasID := b.declIdFor(s, i)
		if hasID {
			if fn, ok := b.bind.IsGenericFunctionValue(declID); ok && generic == nil {
				generic = &ir.FunctionDecl{
					Name:        d.Name,
					TypeParams:  typeParamNames(fn.TypeParams),
					Params:      b.convertParams(fn.Params),
					ReturnType:  b.resolveType(fn.ReturnType),
					Body:        b.functionBody(fn),
					IsAsync:     fn.IsAsync,
					IsGenerator: fn.IsGenerator,
					Exported:    s.Exported,
					Span:        b.span(fn),
				}
				continue
			}
		}
		declarators = append(declarators, ir.VarDeclarator{
			Name: d.Name,
			Type: b.resolveType(d.Type),
			Init: b.convertOptionalExpr(d.Init),
		})
	}

	if generic != nil {
		return generic
	}
	return &ir.VarDecl{Kind: ir.DeclKind(s.Kind), Declarators: declarators, Exported: s.Exported, Span: b.span(s)}
}

func (b *Builder) functionBody(fn *ast.FunctionLiteral) *ir.BlockStmt {
	if fn.Body != nil {
		return b.convertBlock(fn.Body)
	}
	if fn.ExprBody != nil {
		return &ir.BlockStmt{Statements: []ir.Statement{&ir.ReturnStmt{Argument: b.convertExpr(fn.ExprBody)}}}
	}
	return &ir.BlockStmt{}
}

func typeParamNames(tp []ast.TypeParamSyntax) []string {
	if len(tp) == 0 {
		return nil
	}
	out := make([]string, len(tp))
	for i, p := range tp {
		out[i] = p.Name
	}
	return out
}

func (b *Builder) convertParams(params []ast.Param) []ir.Param {
	out := make([]ir.Param, len(params))
	for i, p := range params {
		out[i] = ir.Param{
			Name:     p.Name,
			Type:     b.resolveType(p.Type),
			Optional: p.Optional,
			Default:  b.convertOptionalExpr(p.Default),
			Rest:     p.Rest,
			Passing:  ir.PassingMode(p.Passing),
		}
	}
	return out
}

func (b *Builder) convertInterfaceDeclaration(s *ast.InterfaceDeclaration) ir.Statement {
	if markerInterface(s) {
		return nil
	}
	if indexSignatureOnly(s.Members) {
		return &ir.TypeAliasDecl{
			Name:       s.Name,
			TypeParams: typeParamNames(s.TypeParams),
			Type:       b.dictionaryTypeForMember(s.Members[0]),
			Exported:   s.Exported,
			Span:       b.span(s),
		}
	}
	return &ir.InterfaceDecl{
		Name:       s.Name,
		TypeParams: typeParamNames(s.TypeParams),
		Extends:    b.resolveAllTypes(s.Extends),
		Members:    b.convertClassMembers(s.Members),
		IsStruct:   s.IsStruct,
		Exported:   s.Exported,
		Span:       b.span(s),
	}
}

func (b *Builder) convertClassDeclaration(s *ast.ClassDeclaration) ir.Statement {
	return &ir.ClassDecl{
		Name:       s.Name,
		TypeParams: typeParamNames(s.TypeParams),
		BaseClass:  b.resolveType(s.BaseClass),
		Implements: b.resolveAllTypes(s.Implements),
		Members:    b.convertClassMembers(s.Members),
		IsStruct:   s.IsStruct,
		Exported:   s.Exported,
		Span:       b.span(s),
	}
}

func (b *Builder) convertClassMembers(members []ast.ClassMember) []ir.ClassMember {
	out := make([]ir.ClassMember, 0, len(members))
	for _, m := range members {
		if m.Kind == ast.MemberIndexSignature {
			// index-signature-only handling promotes the whole declaration
			// to a dictionary alias (indexSignatureOnly); a mixed class body
			// with an index signature alongside other members keeps it as a
			// dictionary-typed synthetic field instead, since C# classes
			// cannot carry a bare index signature member.
			out = append(out, ir.ClassMember{
				Name: "Item",
				Kind: ir.MemberField,
				Type: b.dictionaryTypeForMember(m),
			})
			continue
		}
		out = append(out, ir.ClassMember{
			Name:        m.Name,
			Kind:        convertMemberKind(m),
			Visibility:  ir.Visibility(m.Visibility),
			Static:      m.Static,
			Readonly:    m.Readonly,
			Abstract:    m.Abstract,
			Optional:    m.Optional,
			Type:        b.resolveType(m.Type),
			Params:      b.convertParams(m.Params),
			ReturnType:  b.resolveType(m.ReturnType),
			Body:        b.convertBlock(m.Body),
			Initializer: b.convertOptionalExpr(m.Initializer),
		})
	}
	return out
}

func convertMemberKind(m ast.ClassMember) ir.MemberKind {
	switch {
	case m.Kind == ast.MemberConstructor:
		return ir.MemberConstructor
	case m.IsGetter:
		return ir.MemberGetter
	case m.IsSetter:
		return ir.MemberSetter
	case m.Kind == ast.MemberMethod:
		return ir.MemberMethod
	default:
		return ir.MemberField
	}
}

func (b *Builder) dictionaryTypeForMember(m ast.ClassMember) types.IrType {
	valueType := b.resolveType(m.Type)
	keyName := ""
	if len(m.Params) == 1 {
		if ref, ok := m.Params[0].Type.(*ast.TypeReferenceSyntax); ok {
			keyName = ref.Name
		}
	}
	switch keyName {
	case "string":
		return &types.DictionaryType{KeyIsString: true, Value: valueType}
	case "number":
		return &types.DictionaryType{KeyIsString: false, KeyKind: types.Double, Value: valueType}
	default:
		b.diags.Error(diag.CodeInvalidDictionaryKey, b.loc(m.Type), "index signature key must be string or number, got %q", keyName)
		return &types.DictionaryType{KeyIsString: true, Value: valueType}
	}
}

func (b *Builder) resolveAllTypes(ts []ast.TypeSyntax) []types.IrType {
	if len(ts) == 0 {
		return nil
	}
	out := make([]types.IrType, len(ts))
	for i, t := range ts {
		out[i] = b.resolveType(t)
	}
	return out
}

// convertTypeAlias implements union-of-object-literals promotion
// in addition to plain alias conversion.
func (b *Builder) convertTypeAlias(s *ast.TypeAliasDeclaration) ir.Statement {
	if union, ok := s.Type.(*ast.UnionTypeSyntax); ok && unionHasObjectArm(union) {
		return &ir.TypeAliasDecl{
			Name:       s.Name,
			TypeParams: typeParamNames(s.TypeParams),
			Type:       b.promoteUnionObjectArms(s, union),
			Exported:   s.Exported,
			Span:       b.span(s),
		}
	}
	return &ir.TypeAliasDecl{
		Name:       s.Name,
		TypeParams: typeParamNames(s.TypeParams),
		Type:       b.resolveType(s.Type),
		Exported:   s.Exported,
		Span:       b.span(s),
	}
}

func unionHasObjectArm(u *ast.UnionTypeSyntax) bool {
	for _, t := range u.Types {
		if _, ok := t.(*ast.ObjectTypeSyntax); ok {
			return true
		}
	}
	return false
}
