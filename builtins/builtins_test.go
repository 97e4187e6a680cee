package builtins

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/mewlang/mew/runtime"
)

func testEnv(t *testing.T) *runtime.Environment {
	t.Helper()
	env := runtime.NewEnvironment(nil)
	RegisterAll(env, io.Discard)
	return env
}

func global(t *testing.T, env *runtime.Environment, name string) *runtime.Value {
	t.Helper()
	val, err := env.Get(name)
	if err != nil {
		t.Fatalf("global %s: %v", name, err)
	}
	return val
}

func method(t *testing.T, env *runtime.Environment, object, name string) runtime.NativeFunc {
	t.Helper()
	obj := global(t, env, object)
	prop, ok := obj.Object.Properties[name]
	if !ok || prop.Type != runtime.TypeNative {
		t.Fatalf("%s.%s is not a native function", object, name)
	}
	return prop.Native.Fn
}

func call(t *testing.T, fn runtime.NativeFunc, args ...*runtime.Value) *runtime.Value {
	t.Helper()
	val, err := fn(args)
	if err != nil {
		t.Fatalf("native call failed: %v", err)
	}
	return val
}

func callErr(t *testing.T, fn runtime.NativeFunc, args ...*runtime.Value) error {
	t.Helper()
	_, err := fn(args)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	return err
}

// --- print ---

func TestPrintJoinsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	env := runtime.NewEnvironment(nil)
	RegisterAll(env, &buf)

	printFn := global(t, env, "print").Native.Fn
	call(t, printFn, runtime.NewNumber(1), runtime.NewString("two"), runtime.True)
	if got := buf.String(); got != "1 two true\n" {
		t.Fatalf("print output %q", got)
	}
}

func TestPurrIsPrint(t *testing.T) {
	env := testEnv(t)
	if global(t, env, "purr").Native != global(t, env, "print").Native {
		t.Fatal("purr and print should share the same native")
	}
}

// --- toString ---

func TestToString(t *testing.T) {
	env := testEnv(t)
	fn := global(t, env, "toString").Native.Fn

	cases := []struct {
		in   *runtime.Value
		want string
	}{
		{runtime.NewNumber(42), "42"},
		{runtime.NewNumber(math.NaN()), "NaN"},
		{runtime.NewString("mew"), "mew"},
		{runtime.True, "true"},
		{runtime.Null, "null"},
		{runtime.NewArray([]*runtime.Value{runtime.NewNumber(1), runtime.NewNumber(2)}), "[1,2]"},
		{runtime.NewObject(nil), "[object Object]"},
	}
	for _, c := range cases {
		got := call(t, fn, c.in)
		if got.Str != c.want {
			t.Errorf("toString(%s) = %q, want %q", c.in, got.Str, c.want)
		}
	}

	err := callErr(t, fn)
	if !strings.Contains(err.Error(), "toString requires at least one argument") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- predicates ---

func TestPredicates(t *testing.T) {
	env := testEnv(t)

	cases := []struct {
		name string
		val  *runtime.Value
		want bool
	}{
		{"isNumber", runtime.NewNumber(1), true},
		{"isNumber", runtime.NewString("1"), false},
		{"isString", runtime.NewString(""), true},
		{"isBoolean", runtime.False, true},
		{"isNull", runtime.Null, true},
		{"isNull", runtime.Undefined, false},
		{"isUndefined", runtime.Undefined, true},
		{"isArray", runtime.NewArray(nil), true},
		{"isObject", runtime.NewObject(nil), true},
		{"isObject", runtime.NewArray(nil), false},
		{"isFunction", runtime.NewNative("f", nil), true},
	}
	for _, c := range cases {
		fn := global(t, env, c.name).Native.Fn
		if got := call(t, fn, c.val); got.Bool != c.want {
			t.Errorf("%s(%s) = %v, want %v", c.name, c.val, got.Bool, c.want)
		}
	}
}

func TestPredicateArity(t *testing.T) {
	env := testEnv(t)
	fn := global(t, env, "isNumber").Native.Fn
	err := callErr(t, fn)
	if !strings.Contains(err.Error(), "isNumber requires exactly one argument") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Object ---

func TestObjectKeysSorted(t *testing.T) {
	env := testEnv(t)
	keys := method(t, env, "Object", "keys")

	obj := runtime.NewObject(map[string]*runtime.Value{
		"zebra": runtime.NewNumber(1),
		"apple": runtime.NewNumber(2),
	})
	got := call(t, keys, obj)
	if len(got.Array.Elements) != 2 ||
		got.Array.Elements[0].Str != "apple" || got.Array.Elements[1].Str != "zebra" {
		t.Fatalf("keys = %s, want [apple, zebra]", got)
	}
}

func TestObjectKeysOfArray(t *testing.T) {
	env := testEnv(t)
	keys := method(t, env, "Object", "keys")

	arr := runtime.NewArray([]*runtime.Value{runtime.NewString("a"), runtime.NewString("b")})
	got := call(t, keys, arr)
	if len(got.Array.Elements) != 2 || got.Array.Elements[1].Number != 1 {
		t.Fatalf("keys of array = %s", got)
	}
}

func TestObjectValues(t *testing.T) {
	env := testEnv(t)
	values := method(t, env, "Object", "values")

	obj := runtime.NewObject(map[string]*runtime.Value{
		"b": runtime.NewNumber(2),
		"a": runtime.NewNumber(1),
	})
	got := call(t, values, obj)
	if got.Array.Elements[0].Number != 1 || got.Array.Elements[1].Number != 2 {
		t.Fatalf("values = %s, want [1, 2]", got)
	}
}

func TestObjectKeysTypeError(t *testing.T) {
	env := testEnv(t)
	keys := method(t, env, "Object", "keys")
	err := callErr(t, keys, runtime.NewNumber(1))
	if !strings.Contains(err.Error(), "Object.keys requires an object or array, got number") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Mewth ---

func TestMewth(t *testing.T) {
	env := testEnv(t)
	n := runtime.NewNumber

	cases := []struct {
		name string
		args []*runtime.Value
		want float64
	}{
		{"pounce", []*runtime.Value{n(3.7)}, 3},
		{"leap", []*runtime.Value{n(3.2)}, 4},
		{"curl", []*runtime.Value{n(2.5)}, 3},
		{"lick", []*runtime.Value{n(-5)}, 5},
		{"alpha", []*runtime.Value{n(1), n(9), n(4)}, 9},
		{"kitten", []*runtime.Value{n(1), n(9), n(4)}, 1},
		{"dig", []*runtime.Value{n(16)}, 4},
		{"scratch", []*runtime.Value{n(2), n(10)}, 1024},
		{"tailDirection", []*runtime.Value{n(-3)}, -1},
		{"tailDirection", []*runtime.Value{n(0)}, 0},
		{"tailDirection", []*runtime.Value{n(7)}, 1},
	}
	for _, c := range cases {
		fn := method(t, env, "Mewth", c.name)
		if got := call(t, fn, c.args...); got.Number != c.want {
			t.Errorf("Mewth.%s = %v, want %v", c.name, got.Number, c.want)
		}
	}
}

func TestMewthPI(t *testing.T) {
	env := testEnv(t)
	pi := global(t, env, "Mewth").Object.Properties["PI"]
	if pi == nil || pi.Number != math.Pi {
		t.Fatalf("Mewth.PI = %v", pi)
	}
}

func TestMewthChase(t *testing.T) {
	env := testEnv(t)
	chase := method(t, env, "Mewth", "chase")
	got := call(t, chase)
	if got.Number < 0 || got.Number >= 1 {
		t.Fatalf("Mewth.chase = %v, want [0, 1)", got.Number)
	}
	err := callErr(t, chase, runtime.NewNumber(1))
	if !strings.Contains(err.Error(), "Mewth.chase doesn't take any arguments") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMewthDigNegative(t *testing.T) {
	env := testEnv(t)
	dig := method(t, env, "Mewth", "dig")
	err := callErr(t, dig, runtime.NewNumber(-1))
	if !strings.Contains(err.Error(), "Cannot compute square root of negative number") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMewthTypeErrors(t *testing.T) {
	env := testEnv(t)
	pounce := method(t, env, "Mewth", "pounce")
	err := callErr(t, pounce, runtime.NewString("x"))
	if !strings.Contains(err.Error(), "Mewth.pounce requires a number, got string") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- CatTime ---

func dateObject(ms float64) *runtime.Value {
	return runtime.NewObject(map[string]*runtime.Value{
		"_timestamp": runtime.NewNumber(ms),
	})
}

func TestCatTimeAccessors(t *testing.T) {
	env := testEnv(t)
	// 2021-06-15 12:30:45.250 UTC, a Tuesday
	date := dateObject(1623760245250)

	cases := []struct {
		name string
		want float64
	}{
		{"fullYear", 2021},
		{"month", 5},
		{"day", 15},
		{"weekday", 2},
		{"hours", 12},
		{"minutes", 30},
		{"seconds", 45},
		{"milliseconds", 250},
	}
	for _, c := range cases {
		fn := method(t, env, "CatTime", c.name)
		if got := call(t, fn, date); got.Number != c.want {
			t.Errorf("CatTime.%s = %v, want %v", c.name, got.Number, c.want)
		}
	}
}

func TestCatTimeToMeow(t *testing.T) {
	env := testEnv(t)
	toMeow := method(t, env, "CatTime", "toMeow")
	got := call(t, toMeow, dateObject(0))
	if got.Str != "Thu Jan 01 1970 00:00:00 GMT+0000" {
		t.Fatalf("CatTime.toMeow = %q", got.Str)
	}
}

func TestCatTimeRejectsBadDate(t *testing.T) {
	env := testEnv(t)
	fn := method(t, env, "CatTime", "fullYear")

	err := callErr(t, fn, runtime.NewNumber(1))
	if !strings.Contains(err.Error(), "CatTime.fullYear requires a date object") {
		t.Fatalf("unexpected error: %v", err)
	}

	err = callErr(t, fn, runtime.NewObject(nil))
	if !strings.Contains(err.Error(), "Invalid date object passed to CatTime.fullYear") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- MewJ ---

func TestMewjSniff(t *testing.T) {
	env := testEnv(t)
	sniff := method(t, env, "MewJ", "sniff")

	got := call(t, sniff, runtime.NewString(`{"a": [1, true, null], "b": "x"}`))
	if got.Type != runtime.TypeObject {
		t.Fatalf("sniff returned %v", got.Type)
	}
	arr := got.Object.Properties["a"]
	if arr.Type != runtime.TypeArray || len(arr.Array.Elements) != 3 {
		t.Fatalf("sniff array = %s", arr)
	}
	if arr.Array.Elements[2].Type != runtime.TypeNull {
		t.Fatal("JSON null should decode to null")
	}
}

func TestMewjSniffErrors(t *testing.T) {
	env := testEnv(t)
	sniff := method(t, env, "MewJ", "sniff")

	err := callErr(t, sniff, runtime.NewString("{not json"))
	if !strings.Contains(err.Error(), "Invalid JSON syntax") {
		t.Fatalf("unexpected error: %v", err)
	}

	err = callErr(t, sniff, runtime.NewNumber(1))
	if !strings.Contains(err.Error(), "MewJ.sniff requires a string argument, got number") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMewjMewify(t *testing.T) {
	env := testEnv(t)
	mewify := method(t, env, "MewJ", "mewify")

	obj := runtime.NewObject(map[string]*runtime.Value{
		"b": runtime.NewNumber(2),
		"a": runtime.NewString("x"),
	})
	got := call(t, mewify, obj)
	if got.Str != `{"a":"x","b":2}` {
		t.Fatalf("mewify = %q", got.Str)
	}

	// undefined serializes as null
	got = call(t, mewify, runtime.NewArray([]*runtime.Value{runtime.Undefined}))
	if got.Str != "[null]" {
		t.Fatalf("mewify undefined = %q", got.Str)
	}
}

func TestMewifyPretty(t *testing.T) {
	env := testEnv(t)
	mewify := method(t, env, "MewJ", "mewify")

	obj := runtime.NewObject(map[string]*runtime.Value{"a": runtime.NewNumber(1)})
	got := call(t, mewify, obj, runtime.NewNumber(2))
	if !strings.Contains(got.Str, "\n") {
		t.Fatalf("expected pretty output, got %q", got.Str)
	}
}

func TestMewifyErrors(t *testing.T) {
	env := testEnv(t)
	mewify := method(t, env, "MewJ", "mewify")

	err := callErr(t, mewify, runtime.NewNumber(math.NaN()))
	if !strings.Contains(err.Error(), "Cannot convert NaN to JSON") {
		t.Fatalf("unexpected error: %v", err)
	}
	err = callErr(t, mewify, runtime.NewNumber(math.Inf(1)))
	if !strings.Contains(err.Error(), "Cannot convert Infinity to JSON") {
		t.Fatalf("unexpected error: %v", err)
	}
	err = callErr(t, mewify, runtime.NewNative("f", nil))
	if !strings.Contains(err.Error(), "Functions cannot be converted to JSON") {
		t.Fatalf("unexpected error: %v", err)
	}
}
