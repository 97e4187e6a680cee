package runtime

import (
	"strings"
	"testing"
)

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", NewNumber(1), false)

	val, err := env.Get("x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if val.Number != 1 {
		t.Fatalf("got %v, want 1", val.Number)
	}
}

func TestGetUndefinedVariable(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get("ghost")
	if err == nil || !strings.Contains(err.Error(), "Undefined variable 'ghost'") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssignWalksOutward(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", NewNumber(1), false)
	inner := NewEnvironment(outer)

	if err := inner.Assign("x", NewNumber(2)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	val, _ := outer.Get("x")
	if val.Number != 2 {
		t.Fatalf("outer x = %v, want 2", val.Number)
	}
}

func TestConstAssignment(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("pi", NewNumber(3.14), true)

	err := env.Assign("pi", NewNumber(3))
	if err == nil || !strings.Contains(err.Error(), "Cannot reassign to constant 'pi'") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShadowing(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", NewNumber(1), false)
	inner := NewEnvironment(outer)
	inner.Define("x", NewNumber(2), false)

	val, _ := inner.Get("x")
	if val.Number != 2 {
		t.Fatalf("inner x = %v, want 2", val.Number)
	}
	val, _ = outer.Get("x")
	if val.Number != 1 {
		t.Fatalf("outer x = %v, want 1", val.Number)
	}
}
