package runtime

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mewlang/mew/ast"
)

// ValueType represents the type of a Mew value.
type ValueType int

const (
	TypeNull ValueType = iota
	TypeUndefined
	TypeNumber
	TypeBoolean
	TypeString
	TypeArray
	TypeObject
	TypeFunction
	TypeNative
)

func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeUndefined:
		return "undefined"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeFunction, TypeNative:
		return "function"
	default:
		return "unknown"
	}
}

// Value represents a Mew value. Arrays, objects and functions are held by
// pointer so that aliases observe mutation and compare by identity.
type Value struct {
	Type   ValueType
	Bool   bool
	Number float64
	Str    string
	Array  *Array
	Object *Object
	Fn     *Function
	Native *NativeFunction
}

type Array struct {
	Elements []*Value
}

type Object struct {
	Properties map[string]*Value
}

type Function struct {
	Name    string // "" for anonymous
	Params  []string
	Body    *ast.BlockStatement
	Closure *Environment
}

// NativeFunc is the signature of built-in functions. Method-style natives
// receive their receiver as the first argument.
type NativeFunc func(args []*Value) (*Value, error)

type NativeFunction struct {
	Name string
	Fn   NativeFunc
}

var (
	Null      = &Value{Type: TypeNull}
	Undefined = &Value{Type: TypeUndefined}
	True      = &Value{Type: TypeBoolean, Bool: true}
	False     = &Value{Type: TypeBoolean, Bool: false}
)

func NewNumber(n float64) *Value {
	return &Value{Type: TypeNumber, Number: n}
}

func NewString(s string) *Value {
	return &Value{Type: TypeString, Str: s}
}

func NewBool(b bool) *Value {
	if b {
		return True
	}
	return False
}

func NewArray(elements []*Value) *Value {
	return &Value{Type: TypeArray, Array: &Array{Elements: elements}}
}

func NewObject(props map[string]*Value) *Value {
	if props == nil {
		props = make(map[string]*Value)
	}
	return &Value{Type: TypeObject, Object: &Object{Properties: props}}
}

func NewFunction(fn *Function) *Value {
	return &Value{Type: TypeFunction, Fn: fn}
}

func NewNative(name string, fn NativeFunc) *Value {
	return &Value{Type: TypeNative, Native: &NativeFunction{Name: name, Fn: fn}}
}

// Truthy reports whether the value is truthy: false things are false, null,
// undefined, 0, NaN and the empty string.
func (v *Value) Truthy() bool {
	switch v.Type {
	case TypeNull, TypeUndefined:
		return false
	case TypeBoolean:
		return v.Bool
	case TypeNumber:
		return v.Number != 0 && !math.IsNaN(v.Number)
	case TypeString:
		return len(v.Str) > 0
	case TypeArray:
		return len(v.Array.Elements) > 0
	default:
		return true
	}
}

// numbers within epsilon compare equal; NaN never equals anything
const epsilon = 2.220446049250313e-16

// Equals implements Mew structural equality: tolerant number comparison,
// strict bool/string comparison, reference identity for arrays, objects
// and functions.
func Equals(a, b *Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeNull, TypeUndefined:
		return true
	case TypeNumber:
		if math.IsNaN(a.Number) || math.IsNaN(b.Number) {
			return false
		}
		if math.IsInf(a.Number, 0) || math.IsInf(b.Number, 0) {
			return a.Number == b.Number
		}
		return math.Abs(a.Number-b.Number) < epsilon
	case TypeBoolean:
		return a.Bool == b.Bool
	case TypeString:
		return a.Str == b.Str
	case TypeArray:
		return a.Array == b.Array
	case TypeObject:
		return a.Object == b.Object
	case TypeFunction:
		return a.Fn == b.Fn
	case TypeNative:
		return a.Native == b.Native
	default:
		return false
	}
}

// FormatNumber renders a number the Mew way: integers without a decimal
// point, NaN and the infinities by name.
func FormatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// SortedKeys returns property names in sorted order so iteration and
// display are deterministic.
func SortedKeys(props map[string]*Value) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the display form: arrays as [a, b], objects as {k: v},
// functions by name.
func (v *Value) String() string {
	switch v.Type {
	case TypeNull:
		return "null"
	case TypeUndefined:
		return "undefined"
	case TypeNumber:
		return FormatNumber(v.Number)
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeString:
		return v.Str
	case TypeArray:
		parts := make([]string, len(v.Array.Elements))
		for i, el := range v.Array.Elements {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeObject:
		keys := SortedKeys(v.Object.Properties)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v.Object.Properties[k].String()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case TypeFunction:
		if v.Fn.Name != "" {
			return fmt.Sprintf("function %s(...)", v.Fn.Name)
		}
		return "function(...)"
	case TypeNative:
		return fmt.Sprintf("function %s(...) [native]", v.Native.Name)
	default:
		return "unknown"
	}
}
