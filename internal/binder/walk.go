package binder

import "github.com/tsoniclang/tsonic/internal/ast"

func (b *binder) bindStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		b.bindStatement(s)
	}
}

func (b *binder) withScope(f func()) {
	saved := b.scope
	b.scope = NewScope(saved)
	f()
	b.scope = saved
}

func (b *binder) bindStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		for i := range s.Declarators {
			d := &s.Declarators[i]
			if d.Init != nil {
				b.bindExpression(d.Init)
			}
			mutable := s.Kind != ast.DeclConst
			decl := b.declare(d.Name, DeclVariable, stmt, mutable, d.Type)
			if fn, ok := d.Init.(*ast.FunctionLiteral); ok && len(fn.TypeParams) > 0 {
				b.result.genericFn[decl.Id] = fn
			} else if ident, ok := d.Init.(*ast.Identifier); ok {
				if aliasedID, ok := b.result.Resolved[ident]; ok {
					b.result.aliasOf[decl.Id] = aliasedID
				}
			}
		}

	case *ast.FunctionDeclaration:
		b.declare(s.Name, DeclFunction, s, false, nil)
		b.withScope(func() {
			b.bindParams(s.Params)
			if s.Body != nil {
				b.bindStatements(s.Body.Statements)
			}
		})

	case *ast.ClassDeclaration:
		b.declare(s.Name, DeclClass, s, false, nil)
		if s.BaseClass != nil {
			b.captureType(s, s.BaseClass)
		}
		b.withScope(func() {
			b.bindClassMembers(s.Members)
		})

	case *ast.InterfaceDeclaration:
		b.declare(s.Name, DeclInterface, s, false, nil)
		b.withScope(func() {
			b.bindClassMembers(s.Members)
		})

	case *ast.EnumDeclaration:
		b.declare(s.Name, DeclEnum, s, false, nil)
		for _, m := range s.Members {
			if m.Value != nil {
				b.bindExpression(m.Value)
			}
		}

	case *ast.TypeAliasDeclaration:
		decl := b.declare(s.Name, DeclTypeAlias, s, false, nil)
		b.captureType(decl.Node, s.Type)

	case *ast.ExpressionStatement:
		b.bindExpression(s.Expr)

	case *ast.BlockStatement:
		b.withScope(func() { b.bindStatements(s.Statements) })

	case *ast.IfStatement:
		b.bindExpression(s.Test)
		b.bindStatement(s.Then)
		if s.Else != nil {
			b.bindStatement(s.Else)
		}

	case *ast.WhileStatement:
		b.bindExpression(s.Test)
		b.bindStatement(s.Body)

	case *ast.ForStatement:
		b.withScope(func() {
			if s.Init != nil {
				b.bindStatement(s.Init)
			}
			if s.Test != nil {
				b.bindExpression(s.Test)
			}
			if s.Update != nil {
				b.bindExpression(s.Update)
			}
			b.bindStatement(s.Body)
		})

	case *ast.ForOfStatement:
		b.bindExpression(s.Iterable)
		b.withScope(func() {
			if s.Declaring {
				b.declare(s.Name, DeclLoopVar, s, s.DeclKind != ast.DeclConst, s.Type)
			} else if id, ok := b.scope.Resolve(s.Name); ok {
				b.result.Written[id] = true
			}
			b.bindStatement(s.Body)
		})

	case *ast.ForInStatement:
		b.bindExpression(s.Object)
		b.withScope(func() {
			if s.Declaring {
				b.declare(s.Name, DeclLoopVar, s, s.DeclKind != ast.DeclConst, nil)
			} else if id, ok := b.scope.Resolve(s.Name); ok {
				b.result.Written[id] = true
			}
			b.bindStatement(s.Body)
		})

	case *ast.SwitchStatement:
		b.bindExpression(s.Discriminant)
		for _, c := range s.Cases {
			if c.Test != nil {
				b.bindExpression(c.Test)
			}
			b.withScope(func() { b.bindStatements(c.Statements) })
		}

	case *ast.TryStatement:
		b.withScope(func() { b.bindStatements(s.Block.Statements) })
		if s.Catch != nil {
			b.withScope(func() {
				if s.Catch.Param != "" {
					b.declare(s.Catch.Param, DeclCatchParam, s, false, s.Catch.Type)
				}
				b.bindStatements(s.Catch.Body.Statements)
			})
		}
		if s.Finally != nil {
			b.withScope(func() { b.bindStatements(s.Finally.Statements) })
		}

	case *ast.ThrowStatement:
		b.bindExpression(s.Argument)

	case *ast.ReturnStatement:
		if s.Argument != nil {
			b.bindExpression(s.Argument)
		}
	}
}

func (b *binder) bindParams(params []ast.Param) {
	for i := range params {
		p := &params[i]
		if p.Default != nil {
			b.bindExpression(p.Default)
		}
		b.declare(p.Name, DeclParameter, nil, true, p.Type)
	}
}

func (b *binder) bindClassMembers(members []ast.ClassMember) {
	for i := range members {
		m := &members[i]
		if m.Type != nil {
			b.captureType(m, m.Type)
		}
		if m.Initializer != nil {
			b.bindExpression(m.Initializer)
		}
		if m.Body != nil {
			b.withScope(func() {
				b.bindParams(m.Params)
				b.bindStatements(m.Body.Statements)
			})
		}
	}
}

func (b *binder) bindExpression(expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		b.resolveIdentExpr(e)

	case *ast.TemplateLiteral:
		for _, p := range e.Parts {
			if p.Expr != nil {
				b.bindExpression(p.Expr)
			}
		}

	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			b.bindExpression(el)
		}

	case *ast.ObjectLiteral:
		for _, prop := range e.Properties {
			b.bindExpression(prop.Value)
		}

	case *ast.FunctionLiteral:
		b.withScope(func() {
			b.bindParams(e.Params)
			if e.Body != nil {
				b.bindStatements(e.Body.Statements)
			}
			if e.ExprBody != nil {
				b.bindExpression(e.ExprBody)
			}
		})

	case *ast.MemberExpression:
		b.bindExpression(e.Object)
		if e.Computed {
			b.bindExpression(e.Property)
		}

	case *ast.CallExpression:
		b.bindExpression(e.Callee)
		for _, a := range e.Args {
			b.bindExpression(a)
		}

	case *ast.NewExpression:
		b.bindExpression(e.Callee)
		for _, a := range e.Args {
			b.bindExpression(a)
		}

	case *ast.BinaryExpression:
		b.bindExpression(e.Left)
		b.bindExpression(e.Right)

	case *ast.LogicalExpression:
		b.bindExpression(e.Left)
		b.bindExpression(e.Right)

	case *ast.UnaryExpression:
		b.bindExpression(e.Operand)

	case *ast.UpdateExpression:
		b.bindExpression(e.Operand)
		b.markWritten(e.Operand)

	case *ast.ConditionalExpression:
		b.bindExpression(e.Test)
		b.bindExpression(e.Then)
		b.bindExpression(e.Else)

	case *ast.AssignmentExpression:
		b.bindExpression(e.Value)
		b.bindExpression(e.Target)
		b.markWritten(e.Target)
		if e.Op == "=" {
			if ident, ok := e.Target.(*ast.Identifier); ok {
				if targetID, ok := b.result.Resolved[ident]; ok {
					if valIdent, ok := e.Value.(*ast.Identifier); ok {
						if aliasedID, ok := b.result.Resolved[valIdent]; ok {
							b.result.aliasOf[targetID] = aliasedID
						}
					}
				}
			}
		}

	case *ast.SpreadExpression:
		b.bindExpression(e.Argument)

	case *ast.AwaitExpression:
		b.bindExpression(e.Argument)

	case *ast.YieldExpression:
		if e.Argument != nil {
			b.bindExpression(e.Argument)
		}

	case *ast.TypeAssertionExpression:
		b.bindExpression(e.Expr)
		b.captureType(e, e.Type)

	case *ast.TrycastExpression:
		b.bindExpression(e.Expr)
		b.captureType(e, e.Type)

	case *ast.StackallocExpression:
		b.bindExpression(e.Length)
		b.captureType(e, e.ElementType)

	case *ast.ParenWrap:
		b.bindExpression(e.Inner)
	}
}
