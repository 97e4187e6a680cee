package interpreter

import (
	"math"

	"github.com/mewlang/mew/ast"
	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/runtime"
)

func (i *Interpreter) eval(expr ast.Expression) (*runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.NewNumber(e.Value), nil
	case *ast.StringLiteral:
		return runtime.NewString(e.Value), nil
	case *ast.BooleanLiteral:
		return runtime.NewBool(e.Value), nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.UndefinedLiteral:
		return runtime.Undefined, nil

	case *ast.Identifier:
		return i.env.Get(e.Value)

	case *ast.ArrayLiteral:
		elements := make([]*runtime.Value, len(e.Elements))
		for idx, el := range e.Elements {
			value, err := i.eval(el)
			if err != nil {
				return nil, err
			}
			elements[idx] = value
		}
		return runtime.NewArray(elements), nil

	case *ast.ObjectLiteral:
		props := make(map[string]*runtime.Value, len(e.Properties))
		for _, prop := range e.Properties {
			value, err := i.eval(prop.Value)
			if err != nil {
				return nil, err
			}
			props[prop.Key] = value
		}
		return runtime.NewObject(props), nil

	case *ast.FunctionExpression:
		name := ""
		if e.Name != nil {
			name = e.Name.Value
		}
		return runtime.NewFunction(&runtime.Function{
			Name:    name,
			Params:  paramNames(e.Params),
			Body:    e.Body,
			Closure: i.env,
		}), nil

	case *ast.AssignmentExpression:
		return i.evalAssignment(e)

	case *ast.BinaryExpression:
		return i.evalBinary(e)

	case *ast.LogicalExpression:
		// both operands always evaluate; the result is a boolean
		left, err := i.eval(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.eval(e.Right)
		if err != nil {
			return nil, err
		}
		if e.Operator == "&&" {
			return runtime.NewBool(left.Truthy() && right.Truthy()), nil
		}
		return runtime.NewBool(left.Truthy() || right.Truthy()), nil

	case *ast.UnaryExpression:
		return i.evalUnary(e)

	case *ast.UpdateExpression:
		return i.evalUpdate(e)

	case *ast.MemberExpression:
		object, err := i.eval(e.Object)
		if err != nil {
			return nil, err
		}
		return i.getMember(object, e)

	case *ast.CallExpression:
		return i.evalCall(e)
	}

	return nil, mewerr.Runtime("Unknown expression %s", expr.TokenLiteral())
}

func (i *Interpreter) evalAssignment(e *ast.AssignmentExpression) (*runtime.Value, error) {
	value, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch target := e.Left.(type) {
	case *ast.Identifier:
		if err := i.env.Assign(target.Value, value); err != nil {
			return nil, err
		}
		return value, nil
	case *ast.MemberExpression:
		object, err := i.eval(target.Object)
		if err != nil {
			return nil, err
		}
		if err := i.setMember(object, target, value); err != nil {
			return nil, err
		}
		return value, nil
	}
	return nil, mewerr.Syntax("Invalid assignment target.")
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpression) (*runtime.Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "==":
		return runtime.NewBool(runtime.Equals(left, right)), nil
	case "!=":
		return runtime.NewBool(!runtime.Equals(left, right)), nil
	}

	bothNumbers := left.Type == runtime.TypeNumber && right.Type == runtime.TypeNumber

	switch e.Operator {
	case "+":
		if bothNumbers {
			return runtime.NewNumber(left.Number + right.Number), nil
		}
		// string concatenation wins whenever either side is a string
		if left.Type == runtime.TypeString || right.Type == runtime.TypeString {
			return runtime.NewString(left.String() + right.String()), nil
		}
	case "-":
		if bothNumbers {
			return runtime.NewNumber(left.Number - right.Number), nil
		}
	case "*":
		if bothNumbers {
			return runtime.NewNumber(left.Number * right.Number), nil
		}
	case "/":
		if bothNumbers {
			if right.Number == 0 {
				return runtime.NewNumber(posInf), nil
			}
			return runtime.NewNumber(left.Number / right.Number), nil
		}
	case "%":
		if bothNumbers {
			if right.Number == 0 {
				return runtime.NewNumber(nan), nil
			}
			return runtime.NewNumber(mod(left.Number, right.Number)), nil
		}
	case "<":
		if bothNumbers {
			return runtime.NewBool(left.Number < right.Number), nil
		}
	case "<=":
		if bothNumbers {
			return runtime.NewBool(left.Number <= right.Number), nil
		}
	case ">":
		if bothNumbers {
			return runtime.NewBool(left.Number > right.Number), nil
		}
	case ">=":
		if bothNumbers {
			return runtime.NewBool(left.Number >= right.Number), nil
		}
	}

	return nil, mewerr.Type("Cannot apply operator '%s' to %s and %s",
		e.Operator, left.Type, right.Type)
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpression) (*runtime.Value, error) {
	operand, err := i.eval(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "-":
		if operand.Type == runtime.TypeNumber {
			return runtime.NewNumber(-operand.Number), nil
		}
		return nil, mewerr.Type("Cannot apply operator '-' to %s", operand.Type)
	case "!":
		return runtime.NewBool(!operand.Truthy()), nil
	}
	return nil, mewerr.Type("Cannot apply operator '%s' to %s", e.Operator, operand.Type)
}

// evalCall evaluates the callee and arguments and dispatches the call.
// Method calls evaluate the receiver exactly once; the toString native
// receives its receiver as the first argument.
func (i *Interpreter) evalCall(e *ast.CallExpression) (*runtime.Value, error) {
	var callee *runtime.Value
	var receiver *runtime.Value

	if member, ok := e.Callee.(*ast.MemberExpression); ok {
		object, err := i.eval(member.Object)
		if err != nil {
			return nil, err
		}
		method, err := i.getMember(object, member)
		if err != nil {
			return nil, err
		}
		callee = method
		receiver = object
	} else {
		value, err := i.eval(e.Callee)
		if err != nil {
			return nil, err
		}
		callee = value
	}

	var args []*runtime.Value
	if receiver != nil && callee.Type == runtime.TypeNative && callee.Native.Name == "toString" {
		args = append(args, receiver)
	}
	for _, arg := range e.Arguments {
		value, err := i.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}

	return i.callFunction(callee, args)
}

func (i *Interpreter) callFunction(callee *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	switch callee.Type {
	case runtime.TypeFunction:
		fn := callee.Fn
		if len(args) != len(fn.Params) {
			return nil, mewerr.Runtime("Expected %d arguments but got %d", len(fn.Params), len(args))
		}
		if i.depth >= maxCallDepth {
			return nil, mewerr.Runtime("Maximum call depth exceeded")
		}

		env := runtime.NewEnvironment(fn.Closure)
		for idx, param := range fn.Params {
			env.Define(param, args[idx], false)
		}

		i.depth++
		value, sig, err := i.execBlock(fn.Body, env)
		i.depth--
		if err != nil {
			return nil, err
		}
		switch sig {
		case sigBreak:
			return nil, mewerr.Runtime("Cannot use 'clawt' outside of a loop")
		case sigContinue:
			return nil, mewerr.Runtime("Cannot use 'meownext' outside of a loop")
		}
		// sigReturn and falling off the end both yield the value
		return value, nil

	case runtime.TypeNative:
		return callee.Native.Fn(args)
	}

	return nil, mewerr.Type("Can only call functions and classes, got %s", callee.Type)
}

var (
	posInf = math.Inf(1)
	nan    = math.NaN()
)

// mod matches the remainder semantics of the % operator: the result takes
// the sign of the dividend.
func mod(a, b float64) float64 {
	return math.Mod(a, b)
}
