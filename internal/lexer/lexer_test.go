package lexer

import "testing"

func collect(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestNext_Punctuation(t *testing.T) {
	toks := collect(`const x: number[] = [1, 2.5]; x?.y ?? 0; ...rest => {}`)
	want := []TokenType{
		IDENT, IDENT, COLON, IDENT, LBRACKET, RBRACKET, ASSIGN, LBRACKET, INT, COMMA, FLOAT,
		RBRACKET, SEMICOLON, IDENT, QUESTIONDOT, IDENT, NULLISH, INT, SEMICOLON,
		DOTDOTDOT, IDENT, ARROW, LBRACE, RBRACE, EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("len(toks) = %d, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d = %s, want %s (literal %q)", i, toks[i].Type, tt, toks[i].Literal)
		}
	}
}

func TestNext_StrictEquality(t *testing.T) {
	toks := collect(`a === b !== c`)
	want := []TokenType{IDENT, STRICTEQ, IDENT, STRICTNEQ, IDENT, EOF}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d = %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestNext_Strings(t *testing.T) {
	toks := collect(`"hello\nworld" 'it''s'`)
	if toks[0].Type != STRING || toks[0].Literal != "hello\nworld" {
		t.Errorf("toks[0] = %+v", toks[0])
	}
}

func TestNext_TemplateWithInterpolation(t *testing.T) {
	toks := collect("`a${1+1}b`")
	if toks[0].Type != TEMPLATE_STRING {
		t.Fatalf("toks[0].Type = %s, want TEMPLATE_STRING", toks[0].Type)
	}
	if toks[0].Literal != "a${1+1}b" {
		t.Errorf("toks[0].Literal = %q", toks[0].Literal)
	}
}

func TestNext_UnicodeColumnsAreRuneCounted(t *testing.T) {
	l := New("var Δ = 1")
	var last Token
	for {
		tok := l.Next()
		if tok.Type == EOF {
			break
		}
		last = tok
	}
	// "var Δ = 1" -> tokens: var, Δ, =, 1; the int literal '1' starts at
	// rune column 9 (v,a,r,space,Δ,space,=,space,1).
	if last.Pos.Column != 9 {
		t.Errorf("last.Pos.Column = %d, want 9", last.Pos.Column)
	}
}

func TestNext_UnterminatedStringReportsError(t *testing.T) {
	l := New(`"unterminated`)
	l.Next()
	if len(l.Errors()) != 1 {
		t.Fatalf("len(Errors()) = %d, want 1", len(l.Errors()))
	}
}

func TestIsKeyword(t *testing.T) {
	if !IsKeyword("function") {
		t.Error("function should be a keyword")
	}
	if IsKeyword("myVar") {
		t.Error("myVar should not be a keyword")
	}
}
