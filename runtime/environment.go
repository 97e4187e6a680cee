package runtime

import "github.com/mewlang/mew/mewerr"

// Environment represents a lexical scope.
type Environment struct {
	store map[string]*Binding
	outer *Environment
}

type Binding struct {
	Value *Value
	Const bool
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: make(map[string]*Binding),
		outer: outer,
	}
}

// Define creates a binding in the current scope. Redeclaring a name in the
// same scope overwrites it, shadowing never touches outer scopes.
func (e *Environment) Define(name string, value *Value, isConst bool) {
	e.store[name] = &Binding{Value: value, Const: isConst}
}

// Get retrieves a variable value, walking up the scope chain.
func (e *Environment) Get(name string) (*Value, error) {
	if binding, ok := e.store[name]; ok {
		return binding.Value, nil
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, mewerr.Name("Undefined variable '%s'", name)
}

// Assign updates a variable in the scope where it was defined.
func (e *Environment) Assign(name string, value *Value) error {
	if binding, ok := e.store[name]; ok {
		if binding.Const {
			return mewerr.Runtime("Cannot reassign to constant '%s'", name)
		}
		binding.Value = value
		return nil
	}
	if e.outer != nil {
		return e.outer.Assign(name, value)
	}
	return mewerr.Name("Undefined variable '%s'", name)
}

// Has reports whether the name is bound in this scope or any outer one.
func (e *Environment) Has(name string) bool {
	if _, ok := e.store[name]; ok {
		return true
	}
	if e.outer != nil {
		return e.outer.Has(name)
	}
	return false
}
