package interpreter

import (
	"math"
	"unicode/utf8"

	"github.com/mewlang/mew/ast"
	"github.com/mewlang/mew/builtins"
	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/runtime"
)

// property resolves the key of a member access: the identifier text for
// dotted access, the evaluated index expression for bracketed access.
type property struct {
	name     string
	computed *runtime.Value
}

func (p property) String() string {
	if p.computed != nil {
		return p.computed.String()
	}
	return p.name
}

// objectKey maps the property onto an object key. Computed keys must be
// strings or numbers; numbers use their canonical formatting.
func (p property) objectKey() (string, error) {
	if p.computed == nil {
		return p.name, nil
	}
	switch p.computed.Type {
	case runtime.TypeString:
		return p.computed.Str, nil
	case runtime.TypeNumber:
		return runtime.FormatNumber(p.computed.Number), nil
	}
	return "", mewerr.Type("Object property name must be a string or number, got: %s", p.computed.Type)
}

// arrayIndex reports the non-negative integer index a computed property
// resolves to, if any.
func (p property) arrayIndex() (int, bool) {
	if p.computed == nil || p.computed.Type != runtime.TypeNumber {
		return 0, false
	}
	n := p.computed.Number
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || n < 0 {
		return 0, false
	}
	return int(n), true
}

func (i *Interpreter) resolveProperty(e *ast.MemberExpression) (property, error) {
	if !e.Computed {
		return property{name: e.Property.(*ast.Identifier).Value}, nil
	}
	value, err := i.eval(e.Property)
	if err != nil {
		return property{}, err
	}
	return property{computed: value}, nil
}

func (i *Interpreter) getMember(object *runtime.Value, e *ast.MemberExpression) (*runtime.Value, error) {
	prop, err := i.resolveProperty(e)
	if err != nil {
		return nil, err
	}

	// every value exposes toString
	if prop.computed == nil && prop.name == "toString" {
		return builtins.ToString(), nil
	}

	switch object.Type {
	case runtime.TypeObject:
		key, err := prop.objectKey()
		if err != nil {
			return nil, err
		}
		if value, ok := object.Object.Properties[key]; ok {
			return value, nil
		}
		return runtime.Undefined, nil

	case runtime.TypeArray:
		if prop.computed == nil {
			if prop.name == "length" {
				return runtime.NewNumber(float64(len(object.Array.Elements))), nil
			}
			return nil, mewerr.Type("Cannot access property '%s' of array", prop.name)
		}
		index, ok := prop.arrayIndex()
		if !ok {
			return nil, mewerr.Type("Cannot access property '%s' of array", prop)
		}
		if index >= len(object.Array.Elements) {
			return nil, mewerr.Runtime("Index out of bounds: %d", index)
		}
		return object.Array.Elements[index], nil

	case runtime.TypeString:
		if prop.computed == nil && prop.name == "length" {
			return runtime.NewNumber(float64(utf8.RuneCountInString(object.Str))), nil
		}
		return nil, mewerr.Type("Cannot access property '%s' of string", prop)
	}

	return nil, mewerr.Type("Cannot access property '%s' of %s", prop, object.Type)
}

func (i *Interpreter) setMember(object *runtime.Value, e *ast.MemberExpression, value *runtime.Value) error {
	prop, err := i.resolveProperty(e)
	if err != nil {
		return err
	}

	switch object.Type {
	case runtime.TypeObject:
		key, err := prop.objectKey()
		if err != nil {
			return err
		}
		object.Object.Properties[key] = value
		return nil

	case runtime.TypeArray:
		index, ok := prop.arrayIndex()
		if !ok {
			return mewerr.Type("Cannot set property '%s' of array", prop)
		}
		if index >= len(object.Array.Elements) {
			return mewerr.Runtime("Index out of bounds: %d", index)
		}
		object.Array.Elements[index] = value
		return nil
	}

	return mewerr.Type("Cannot set property '%s' of %s", prop, object.Type)
}

func (i *Interpreter) evalUpdate(e *ast.UpdateExpression) (*runtime.Value, error) {
	delta := 1.0
	verb := "increment"
	if e.Operator == "--" {
		delta = -1.0
		verb = "decrement"
	}

	switch target := e.Operand.(type) {
	case *ast.Identifier:
		current, err := i.env.Get(target.Value)
		if err != nil {
			return nil, err
		}
		if current.Type != runtime.TypeNumber {
			return nil, mewerr.Type("Cannot %s a non-number value: %s", verb, current.Type)
		}
		updated := runtime.NewNumber(current.Number + delta)
		if err := i.env.Assign(target.Value, updated); err != nil {
			return nil, err
		}
		if e.Prefix {
			return updated, nil
		}
		return current, nil

	case *ast.MemberExpression:
		object, err := i.eval(target.Object)
		if err != nil {
			return nil, err
		}
		return i.updateMember(object, target, delta, verb, e.Prefix)
	}

	return nil, mewerr.Syntax("Invalid increment/decrement target.")
}

func (i *Interpreter) updateMember(object *runtime.Value, e *ast.MemberExpression, delta float64, verb string, prefix bool) (*runtime.Value, error) {
	prop, err := i.resolveProperty(e)
	if err != nil {
		return nil, err
	}

	switch object.Type {
	case runtime.TypeObject:
		key, err := prop.objectKey()
		if err != nil {
			return nil, err
		}
		current, ok := object.Object.Properties[key]
		if !ok {
			return nil, mewerr.Name("Property not found: %s", key)
		}
		if current.Type != runtime.TypeNumber {
			return nil, mewerr.Type("Cannot %s a non-number property: %s", verb, key)
		}
		updated := runtime.NewNumber(current.Number + delta)
		object.Object.Properties[key] = updated
		if prefix {
			return updated, nil
		}
		return current, nil

	case runtime.TypeArray:
		if prop.computed == nil && prop.name == "length" {
			return nil, mewerr.Type("Cannot %s array length", verb)
		}
		index, ok := prop.arrayIndex()
		if !ok {
			return nil, mewerr.Type("Cannot %s property '%s' of array", verb, prop)
		}
		if index >= len(object.Array.Elements) {
			return nil, mewerr.Runtime("Index out of bounds: %d", index)
		}
		current := object.Array.Elements[index]
		if current.Type != runtime.TypeNumber {
			return nil, mewerr.Type("Cannot %s a non-number value: %s", verb, current.Type)
		}
		updated := runtime.NewNumber(current.Number + delta)
		object.Array.Elements[index] = updated
		if prefix {
			return updated, nil
		}
		return current, nil
	}

	return nil, mewerr.Type("Cannot %s property of %s", verb, object.Type)
}
