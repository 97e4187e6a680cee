// Package builtins defines the native functions and global objects every
// Mew program sees: print/purr, toString, time, the type predicates,
// Object, Mewth, CatTime and MewJ.
package builtins

import (
	"fmt"
	"io"
	"time"

	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/runtime"
)

// RegisterAll installs every native into env. Printed output goes to out.
func RegisterAll(env *runtime.Environment, out io.Writer) {
	printFn := newPrint(out)
	env.Define("print", printFn, true)
	env.Define("purr", printFn, true)
	env.Define("toString", toStringValue, true)
	env.Define("time", runtime.NewNative("time", nativeTime), true)

	for name, check := range predicates {
		env.Define(name, predicate(name, check), true)
	}

	env.Define("Object", objectGlobal(), true)
	env.Define("Mewth", mewthGlobal(), true)
	env.Define("CatTime", catTimeGlobal(), true)
	env.Define("MewJ", mewjGlobal(), true)
}

// ToString returns the shared toString native. Member access yields it for
// every value, so the evaluator can prepend the receiver when it is called
// as a method.
func ToString() *runtime.Value {
	return toStringValue
}

func newPrint(out io.Writer) *runtime.Value {
	return runtime.NewNative("print", func(args []*runtime.Value) (*runtime.Value, error) {
		for i, arg := range args {
			if i > 0 {
				fmt.Fprint(out, " ")
			}
			fmt.Fprint(out, arg.String())
		}
		fmt.Fprintln(out)
		return runtime.Undefined, nil
	})
}

var toStringValue = runtime.NewNative("toString", func(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) == 0 {
		return nil, mewerr.Runtime("toString requires at least one argument")
	}
	return runtime.NewString(stringify(args[0])), nil
})

// stringify differs from display form in one place: top-level array
// elements are joined without a space, the JavaScript way.
func stringify(v *runtime.Value) string {
	if v.Type == runtime.TypeObject {
		return "[object Object]"
	}
	if v.Type != runtime.TypeArray {
		return v.String()
	}
	out := "["
	for i, el := range v.Array.Elements {
		if i > 0 {
			out += ","
		}
		out += el.String()
	}
	return out + "]"
}

func nativeTime(args []*runtime.Value) (*runtime.Value, error) {
	return runtime.NewNumber(float64(time.Now().UnixMilli())), nil
}

var predicates = map[string]func(*runtime.Value) bool{
	"isNumber":    func(v *runtime.Value) bool { return v.Type == runtime.TypeNumber },
	"isString":    func(v *runtime.Value) bool { return v.Type == runtime.TypeString },
	"isBoolean":   func(v *runtime.Value) bool { return v.Type == runtime.TypeBoolean },
	"isNull":      func(v *runtime.Value) bool { return v.Type == runtime.TypeNull },
	"isUndefined": func(v *runtime.Value) bool { return v.Type == runtime.TypeUndefined },
	"isArray":     func(v *runtime.Value) bool { return v.Type == runtime.TypeArray },
	"isObject":    func(v *runtime.Value) bool { return v.Type == runtime.TypeObject },
	"isFunction": func(v *runtime.Value) bool {
		return v.Type == runtime.TypeFunction || v.Type == runtime.TypeNative
	},
}

func predicate(name string, check func(*runtime.Value) bool) *runtime.Value {
	return runtime.NewNative(name, func(args []*runtime.Value) (*runtime.Value, error) {
		if len(args) != 1 {
			return nil, mewerr.Runtime("%s requires exactly one argument", name)
		}
		return runtime.NewBool(check(args[0])), nil
	})
}

func objectGlobal() *runtime.Value {
	return runtime.NewObject(map[string]*runtime.Value{
		"keys":   runtime.NewNative("keys", nativeObjectKeys),
		"values": runtime.NewNative("values", nativeObjectValues),
	})
}

func nativeObjectKeys(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, mewerr.Runtime("Object.keys requires exactly one argument")
	}
	switch args[0].Type {
	case runtime.TypeObject:
		keys := runtime.SortedKeys(args[0].Object.Properties)
		elements := make([]*runtime.Value, len(keys))
		for i, k := range keys {
			elements[i] = runtime.NewString(k)
		}
		return runtime.NewArray(elements), nil
	case runtime.TypeArray:
		elements := make([]*runtime.Value, len(args[0].Array.Elements))
		for i := range elements {
			elements[i] = runtime.NewNumber(float64(i))
		}
		return runtime.NewArray(elements), nil
	}
	return nil, mewerr.Type("Object.keys requires an object or array, got %s", args[0].Type)
}

func nativeObjectValues(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, mewerr.Runtime("Object.values requires exactly one argument")
	}
	switch args[0].Type {
	case runtime.TypeObject:
		keys := runtime.SortedKeys(args[0].Object.Properties)
		elements := make([]*runtime.Value, len(keys))
		for i, k := range keys {
			elements[i] = args[0].Object.Properties[k]
		}
		return runtime.NewArray(elements), nil
	case runtime.TypeArray:
		elements := make([]*runtime.Value, len(args[0].Array.Elements))
		copy(elements, args[0].Array.Elements)
		return runtime.NewArray(elements), nil
	}
	return nil, mewerr.Type("Object.values requires an object or array, got %s", args[0].Type)
}
