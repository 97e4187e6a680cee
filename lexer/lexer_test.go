package lexer

import (
	"testing"

	"github.com/mewlang/mew/token"
)

func expectTokens(t *testing.T, input string, expected []struct {
	typ token.TokenType
	lit string
}) {
	t.Helper()
	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Errorf("test[%d]: type wrong. expected=%d, got=%d (lit=%q)", i, exp.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != exp.lit {
			t.Errorf("test[%d]: literal wrong. expected=%q, got=%q", i, exp.lit, tok.Literal)
		}
	}
}

func TestSingleCharTokens(t *testing.T) {
	expectTokens(t, `( ) { } [ ] ; : , .`, []struct {
		typ token.TokenType
		lit string
	}{
		{token.LeftParen, "("},
		{token.RightParen, ")"},
		{token.LeftBrace, "{"},
		{token.RightBrace, "}"},
		{token.LeftBracket, "["},
		{token.RightBracket, "]"},
		{token.Semicolon, ";"},
		{token.Colon, ":"},
		{token.Comma, ","},
		{token.Dot, "."},
		{token.EOF, ""},
	})
}

func TestOperators(t *testing.T) {
	expectTokens(t, `+ - * / % = == != < <= > >= && || ! ++ -- += -= *= /= =>`, []struct {
		typ token.TokenType
		lit string
	}{
		{token.Plus, "+"},
		{token.Minus, "-"},
		{token.Asterisk, "*"},
		{token.Slash, "/"},
		{token.Percent, "%"},
		{token.Assign, "="},
		{token.Equal, "=="},
		{token.NotEqual, "!="},
		{token.LessThan, "<"},
		{token.LessThanOrEqual, "<="},
		{token.GreaterThan, ">"},
		{token.GreaterThanOrEqual, ">="},
		{token.And, "&&"},
		{token.Or, "||"},
		{token.Not, "!"},
		{token.Increment, "++"},
		{token.Decrement, "--"},
		{token.PlusAssign, "+="},
		{token.MinusAssign, "-="},
		{token.AsteriskAssign, "*="},
		{token.SlashAssign, "/="},
		{token.Arrow, "=>"},
		{token.EOF, ""},
	})
}

func TestKeywords(t *testing.T) {
	expectTokens(t, `catst catlt catv meow? meowse? hiss fur mewhile mewdo clawt meownext catwalk claw default cat return purr in of true false null undefined NaN Infinity`, []struct {
		typ token.TokenType
		lit string
	}{
		{token.Const, "catst"},
		{token.Let, "catlt"},
		{token.Var, "catv"},
		{token.If, "meow?"},
		{token.ElseIf, "meowse?"},
		{token.Else, "hiss"},
		{token.For, "fur"},
		{token.While, "mewhile"},
		{token.Do, "mewdo"},
		{token.Break, "clawt"},
		{token.Continue, "meownext"},
		{token.Switch, "catwalk"},
		{token.Case, "claw"},
		{token.Default, "default"},
		{token.Function, "cat"},
		{token.Return, "return"},
		{token.Print, "purr"},
		{token.In, "in"},
		{token.Of, "of"},
		{token.True, "true"},
		{token.False, "false"},
		{token.Null, "null"},
		{token.Undefined, "undefined"},
		{token.NaN, "NaN"},
		{token.Infinity, "Infinity"},
		{token.EOF, ""},
	})
}

func TestIdentifiers(t *testing.T) {
	expectTokens(t, `meow kitty_name _x cat9 isHappy?`, []struct {
		typ token.TokenType
		lit string
	}{
		{token.Identifier, "meow"},
		{token.Identifier, "kitty_name"},
		{token.Identifier, "_x"},
		{token.Identifier, "cat9"},
		{token.Identifier, "isHappy?"},
		{token.EOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	expectTokens(t, `0 42 3.14 0.5`, []struct {
		typ token.TokenType
		lit string
	}{
		{token.Number, "0"},
		{token.Number, "42"},
		{token.Number, "3.14"},
		{token.Number, "0.5"},
		{token.EOF, ""},
	})
}

func TestStrings(t *testing.T) {
	expectTokens(t, `"hello" 'world' "a\nb" "quote: \"x\""`, []struct {
		typ token.TokenType
		lit string
	}{
		{token.String, "hello"},
		{token.String, "world"},
		{token.String, "a\nb"},
		{token.String, `quote: "x"`},
		{token.EOF, ""},
	})
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"never closed`)
	tok := l.NextToken()
	if tok.Type != token.Illegal {
		t.Fatalf("expected illegal token, got type=%d lit=%q", tok.Type, tok.Literal)
	}
	if tok.Literal != "Unterminated string" {
		t.Fatalf("unexpected message: %q", tok.Literal)
	}
}

func TestInvalidEscape(t *testing.T) {
	l := New(`"\q"`)
	tok := l.NextToken()
	if tok.Type != token.Illegal {
		t.Fatalf("expected illegal token, got type=%d lit=%q", tok.Type, tok.Literal)
	}
}

func TestComments(t *testing.T) {
	expectTokens(t, "// line comment\n42 /* block\ncomment */ 7", []struct {
		typ token.TokenType
		lit string
	}{
		{token.Number, "42"},
		{token.Number, "7"},
		{token.EOF, ""},
	})
}

func TestUnterminatedBlockComment(t *testing.T) {
	l := New("/* forever")
	tok := l.NextToken()
	if tok.Type != token.Illegal {
		t.Fatalf("expected illegal token, got type=%d lit=%q", tok.Type, tok.Literal)
	}
	if tok.Literal != "Unterminated block comment" {
		t.Fatalf("unexpected message: %q", tok.Literal)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("a\n  b")
	first := l.NextToken()
	second := l.NextToken()
	if first.Line != 1 || first.Column != 1 {
		t.Errorf("first token at %d:%d, want 1:1", first.Line, first.Column)
	}
	if second.Line != 2 || second.Column != 3 {
		t.Errorf("second token at %d:%d, want 2:3", second.Line, second.Column)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New("&")
	tok := l.NextToken()
	if tok.Type != token.Illegal {
		t.Fatalf("expected illegal token, got type=%d", tok.Type)
	}
	if tok.Literal != "Unexpected character '&'" {
		t.Fatalf("unexpected message: %q", tok.Literal)
	}
}
