package builtins

import (
	"encoding/json"
	"math"

	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/runtime"
)

// mewjGlobal builds MewJ, the JSON library: sniff parses, mewify
// serializes.
func mewjGlobal() *runtime.Value {
	return runtime.NewObject(map[string]*runtime.Value{
		"sniff":  runtime.NewNative("sniff", nativeMewjSniff),
		"mewify": runtime.NewNative("mewify", nativeMewjMewify),
	})
}

func nativeMewjSniff(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, mewerr.Runtime("MewJ.sniff requires exactly one argument")
	}
	if args[0].Type != runtime.TypeString {
		return nil, mewerr.Type("MewJ.sniff requires a string argument, got %s", args[0].Type)
	}

	var decoded any
	if err := json.Unmarshal([]byte(args[0].Str), &decoded); err != nil {
		return nil, mewerr.Runtime("Invalid JSON syntax: %s", err)
	}
	return fromJSON(decoded), nil
}

func nativeMewjMewify(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, mewerr.Runtime("MewJ.mewify requires one or two arguments")
	}

	pretty := false
	if len(args) == 2 && args[1].Type == runtime.TypeNumber {
		n := args[1].Number
		pretty = n >= 0 && n <= 10
	}

	plain, err := toJSON(args[0])
	if err != nil {
		return nil, err
	}

	var encoded []byte
	if pretty {
		encoded, err = json.MarshalIndent(plain, "", "  ")
	} else {
		encoded, err = json.Marshal(plain)
	}
	if err != nil {
		return nil, mewerr.Runtime("Serialization error: %s", err)
	}
	return runtime.NewString(string(encoded)), nil
}

func fromJSON(decoded any) *runtime.Value {
	switch v := decoded.(type) {
	case nil:
		return runtime.Null
	case bool:
		return runtime.NewBool(v)
	case float64:
		return runtime.NewNumber(v)
	case string:
		return runtime.NewString(v)
	case []any:
		elements := make([]*runtime.Value, len(v))
		for i, el := range v {
			elements[i] = fromJSON(el)
		}
		return runtime.NewArray(elements)
	case map[string]any:
		props := make(map[string]*runtime.Value, len(v))
		for k, el := range v {
			props[k] = fromJSON(el)
		}
		return runtime.NewObject(props)
	}
	return runtime.Null
}

// toJSON lowers a value to the plain Go shapes encoding/json understands.
// Undefined becomes null; NaN, the infinities and functions are errors.
func toJSON(v *runtime.Value) (any, error) {
	switch v.Type {
	case runtime.TypeNull, runtime.TypeUndefined:
		return nil, nil
	case runtime.TypeBoolean:
		return v.Bool, nil
	case runtime.TypeString:
		return v.Str, nil
	case runtime.TypeNumber:
		if math.IsNaN(v.Number) {
			return nil, mewerr.Runtime("Cannot convert NaN to JSON")
		}
		if math.IsInf(v.Number, 0) {
			return nil, mewerr.Runtime("Cannot convert Infinity to JSON")
		}
		return v.Number, nil
	case runtime.TypeArray:
		elements := make([]any, len(v.Array.Elements))
		for i, el := range v.Array.Elements {
			plain, err := toJSON(el)
			if err != nil {
				return nil, err
			}
			elements[i] = plain
		}
		return elements, nil
	case runtime.TypeObject:
		props := make(map[string]any, len(v.Object.Properties))
		for k, el := range v.Object.Properties {
			plain, err := toJSON(el)
			if err != nil {
				return nil, err
			}
			props[k] = plain
		}
		return props, nil
	}
	return nil, mewerr.Runtime("Functions cannot be converted to JSON")
}
