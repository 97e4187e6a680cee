package parser

import (
	"strings"
	"testing"

	"github.com/mewlang/mew/ast"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := Parse(input)
	if err != nil {
		t.Fatalf("parser error: %s", err)
	}
	return prog
}

func parseError(t *testing.T, input string) error {
	t.Helper()
	_, err := Parse(input)
	if err == nil {
		t.Fatalf("expected parse error for %q but got none", input)
	}
	return err
}

func expectStmtCount(t *testing.T, prog *ast.Program, n int) {
	t.Helper()
	if len(prog.Statements) != n {
		t.Fatalf("expected %d statements, got %d", n, len(prog.Statements))
	}
}

// ---------- Declarations ----------

func TestVariableDeclarations(t *testing.T) {
	prog := parse(t, `catst a = 1; catlt b = 2; catv c = 3;`)
	expectStmtCount(t, prog, 3)

	kinds := []string{"catst", "catlt", "catv"}
	names := []string{"a", "b", "c"}
	for i, stmt := range prog.Statements {
		decl, ok := stmt.(*ast.VariableDeclaration)
		if !ok {
			t.Fatalf("statement %d: expected VariableDeclaration, got %T", i, stmt)
		}
		if decl.Kind != kinds[i] {
			t.Errorf("statement %d: expected kind %s, got %s", i, kinds[i], decl.Kind)
		}
		if decl.Name.Value != names[i] {
			t.Errorf("statement %d: expected name %s, got %s", i, names[i], decl.Name.Value)
		}
	}
}

func TestDeclarationWithoutInitializer(t *testing.T) {
	prog := parse(t, `catlt x;`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	if decl.Value != nil {
		t.Fatalf("expected nil initializer, got %T", decl.Value)
	}
}

func TestConstFlag(t *testing.T) {
	prog := parse(t, `catst x = 1; catlt y = 2;`)
	if !prog.Statements[0].(*ast.VariableDeclaration).Const() {
		t.Error("catst declaration should be const")
	}
	if prog.Statements[1].(*ast.VariableDeclaration).Const() {
		t.Error("catlt declaration should not be const")
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog := parse(t, `cat add(a, b) { return a + b; }`)
	expectStmtCount(t, prog, 1)
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected FunctionDeclaration, got %T", prog.Statements[0])
	}
	if fn.Name.Value != "add" {
		t.Errorf("expected name add, got %s", fn.Name.Value)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
}

// ---------- Expressions ----------

func TestOperatorPrecedence(t *testing.T) {
	prog := parse(t, `1 + 2 * 3;`)
	expr := prog.Statements[0].(*ast.ExpressionStatement).Expression
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected BinaryExpression, got %T", expr)
	}
	if bin.Operator != "+" {
		t.Fatalf("expected + at the top, got %s", bin.Operator)
	}
	right, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || right.Operator != "*" {
		t.Fatalf("expected * on the right, got %T", bin.Right)
	}
}

func TestComparisonBindsTighterThanLogical(t *testing.T) {
	prog := parse(t, `a < b && c > d;`)
	expr := prog.Statements[0].(*ast.ExpressionStatement).Expression
	logical, ok := expr.(*ast.LogicalExpression)
	if !ok {
		t.Fatalf("expected LogicalExpression, got %T", expr)
	}
	if logical.Operator != "&&" {
		t.Fatalf("expected &&, got %s", logical.Operator)
	}
	if _, ok := logical.Left.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected comparison on the left, got %T", logical.Left)
	}
}

func TestCompoundAssignmentLowering(t *testing.T) {
	prog := parse(t, `x += 1;`)
	expr := prog.Statements[0].(*ast.ExpressionStatement).Expression
	assign, ok := expr.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("expected AssignmentExpression, got %T", expr)
	}
	bin, ok := assign.Right.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected lowered binary +, got %T", assign.Right)
	}
}

func TestMemberExpressions(t *testing.T) {
	prog := parse(t, `a.b; a[0];`)
	dotted := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.MemberExpression)
	if dotted.Computed {
		t.Error("a.b should not be computed")
	}
	indexed := prog.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.MemberExpression)
	if !indexed.Computed {
		t.Error("a[0] should be computed")
	}
}

func TestArrowFunctionLowering(t *testing.T) {
	prog := parse(t, `catst f = cat (x) => x + 1;`)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	fn, ok := decl.Value.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("expected FunctionExpression, got %T", decl.Value)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStatement); !ok {
		t.Fatalf("arrow body should lower to a return, got %T", fn.Body.Statements[0])
	}
}

func TestObjectLiteralKeys(t *testing.T) {
	prog := parse(t, `catst o = {name: 1, "with space": 2};`)
	obj := prog.Statements[0].(*ast.VariableDeclaration).Value.(*ast.ObjectLiteral)
	if len(obj.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Properties))
	}
	if obj.Properties[1].Key != "with space" {
		t.Errorf("expected string key, got %q", obj.Properties[1].Key)
	}
}

func TestTrailingCommas(t *testing.T) {
	parse(t, `catst a = [1, 2, 3,];`)
	parse(t, `catst o = {x: 1,};`)
}

// ---------- Desugarings ----------

func TestForLoopDesugarsToWhile(t *testing.T) {
	prog := parse(t, `fur (catlt i = 0; i < 3; i++) { }`)
	blk, ok := prog.Statements[0].(*ast.BlockStatement)
	if !ok {
		t.Fatalf("expected BlockStatement wrapper, got %T", prog.Statements[0])
	}
	if len(blk.Statements) != 2 {
		t.Fatalf("expected init + while, got %d statements", len(blk.Statements))
	}
	if _, ok := blk.Statements[0].(*ast.VariableDeclaration); !ok {
		t.Fatalf("expected initializer first, got %T", blk.Statements[0])
	}
	if _, ok := blk.Statements[1].(*ast.WhileStatement); !ok {
		t.Fatalf("expected while second, got %T", blk.Statements[1])
	}
}

func TestForOfDesugarsToIndexedWhile(t *testing.T) {
	prog := parse(t, `fur (catst x of items) { }`)
	blk, ok := prog.Statements[0].(*ast.BlockStatement)
	if !ok {
		t.Fatalf("expected BlockStatement wrapper, got %T", prog.Statements[0])
	}
	// iterator, index and values declarations, then the loop
	if len(blk.Statements) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(blk.Statements))
	}
	if _, ok := blk.Statements[len(blk.Statements)-1].(*ast.WhileStatement); !ok {
		t.Fatalf("expected while last, got %T", blk.Statements[len(blk.Statements)-1])
	}
}

func TestDoWhileDesugar(t *testing.T) {
	prog := parse(t, `mewdo { x; } mewhile (x < 3);`)
	blk := prog.Statements[0].(*ast.BlockStatement)
	if len(blk.Statements) != 2 {
		t.Fatalf("expected body + while, got %d statements", len(blk.Statements))
	}
	if _, ok := blk.Statements[1].(*ast.WhileStatement); !ok {
		t.Fatalf("expected trailing while, got %T", blk.Statements[1])
	}
}

// ---------- Errors ----------

func TestMissingSemicolon(t *testing.T) {
	err := parseError(t, `catlt x = 1`)
	if !strings.Contains(err.Error(), "Expected ';' after variable declaration") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	err := parseError(t, `1 = 2;`)
	if !strings.Contains(err.Error(), "Invalid assignment target.") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExpectedExpression(t *testing.T) {
	err := parseError(t, `catlt x = ;`)
	if !strings.Contains(err.Error(), "Expected expression.") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReservedKeyword(t *testing.T) {
	err := parseError(t, `import thing;`)
	if !strings.Contains(err.Error(), "'import' is reserved and not supported yet.") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorCarriesLocation(t *testing.T) {
	err := parseError(t, "catlt x = 1;\ncatlt y = ;")
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 in error, got: %v", err)
	}
}

func TestFirstErrorWins(t *testing.T) {
	err := parseError(t, "catlt = 1;\ncatlt y = ;")
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected the first error, got: %v", err)
	}
}
