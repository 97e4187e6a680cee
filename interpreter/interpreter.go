// Package interpreter walks the AST and evaluates it. Control flow inside
// function and loop bodies travels as an explicit signal alongside the
// value, so return values cross block boundaries intact and break/continue
// stop at the nearest loop.
package interpreter

import (
	"io"
	"os"

	"github.com/mewlang/mew/ast"
	"github.com/mewlang/mew/builtins"
	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/parser"
	"github.com/mewlang/mew/runtime"
)

type signal int

const (
	sigNone signal = iota
	sigReturn
	sigBreak
	sigContinue
)

const maxCallDepth = 10000

type Interpreter struct {
	globals *runtime.Environment
	env     *runtime.Environment
	out     io.Writer
	depth   int
}

func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput routes purr/print output to the given writer.
func NewWithOutput(out io.Writer) *Interpreter {
	globals := runtime.NewEnvironment(nil)
	builtins.RegisterAll(globals, out)
	interp := &Interpreter{globals: globals, env: globals, out: out}
	return interp
}

// Interpret parses and evaluates source in a fresh interpreter.
func Interpret(source string) (*runtime.Value, error) {
	return New().Run(source)
}

// Run parses source and evaluates it against this interpreter's
// environment.
func (i *Interpreter) Run(source string) (*runtime.Value, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return i.Eval(program)
}

// Eval executes a program against the interpreter's persistent environment
// and returns the value of the last statement. Definitions survive across
// calls, which is what keeps a REPL session alive.
func (i *Interpreter) Eval(program *ast.Program) (*runtime.Value, error) {
	result := runtime.Null
	for _, stmt := range program.Statements {
		value, sig, err := i.exec(stmt)
		if err != nil {
			return nil, err
		}
		switch sig {
		case sigReturn:
			return nil, mewerr.Runtime("Cannot use 'return' outside of a function")
		case sigBreak:
			return nil, mewerr.Runtime("Cannot use 'clawt' outside of a loop")
		case sigContinue:
			return nil, mewerr.Runtime("Cannot use 'meownext' outside of a loop")
		}
		result = value
	}
	return result, nil
}

func (i *Interpreter) exec(stmt ast.Statement) (*runtime.Value, signal, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		value, err := i.eval(s.Expression)
		return value, sigNone, err

	case *ast.PrintStatement:
		value, err := i.eval(s.Value)
		if err != nil {
			return nil, sigNone, err
		}
		io.WriteString(i.out, value.String())
		io.WriteString(i.out, "\n")
		return runtime.Undefined, sigNone, nil

	case *ast.VariableDeclaration:
		value := runtime.Undefined
		if s.Value != nil {
			var err error
			value, err = i.eval(s.Value)
			if err != nil {
				return nil, sigNone, err
			}
		}
		i.env.Define(s.Name.Value, value, s.Const())
		return runtime.Undefined, sigNone, nil

	case *ast.FunctionDeclaration:
		fn := &runtime.Function{
			Name:    s.Name.Value,
			Params:  paramNames(s.Params),
			Body:    s.Body,
			Closure: i.env,
		}
		i.env.Define(s.Name.Value, runtime.NewFunction(fn), false)
		return runtime.Undefined, sigNone, nil

	case *ast.BlockStatement:
		return i.execBlock(s, runtime.NewEnvironment(i.env))

	case *ast.IfStatement:
		cond, err := i.eval(s.Condition)
		if err != nil {
			return nil, sigNone, err
		}
		if cond.Truthy() {
			return i.exec(s.Consequence)
		}
		if s.Alternative != nil {
			return i.exec(s.Alternative)
		}
		return runtime.Undefined, sigNone, nil

	case *ast.WhileStatement:
		return i.execWhile(s)

	case *ast.ReturnStatement:
		value := runtime.Undefined
		if s.Value != nil {
			var err error
			value, err = i.eval(s.Value)
			if err != nil {
				return nil, sigNone, err
			}
		}
		return value, sigReturn, nil

	case *ast.BreakStatement:
		return runtime.Undefined, sigBreak, nil

	case *ast.ContinueStatement:
		return runtime.Undefined, sigContinue, nil

	case *ast.SwitchStatement:
		return i.execSwitch(s)
	}

	return nil, sigNone, mewerr.Runtime("Unknown statement %s", stmt.TokenLiteral())
}

// execBlock runs statements in the given scope, restoring the previous one
// afterwards. The block's value is that of its last statement.
func (i *Interpreter) execBlock(blk *ast.BlockStatement, env *runtime.Environment) (*runtime.Value, signal, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	return i.execStatements(blk.Statements)
}

func (i *Interpreter) execStatements(statements []ast.Statement) (*runtime.Value, signal, error) {
	result := runtime.Undefined
	for _, stmt := range statements {
		value, sig, err := i.exec(stmt)
		if err != nil {
			return nil, sigNone, err
		}
		if sig != sigNone {
			return value, sig, nil
		}
		result = value
	}
	return result, sigNone, nil
}

func (i *Interpreter) execWhile(s *ast.WhileStatement) (*runtime.Value, signal, error) {
	result := runtime.Undefined
	for {
		cond, err := i.eval(s.Condition)
		if err != nil {
			return nil, sigNone, err
		}
		if !cond.Truthy() {
			return result, sigNone, nil
		}

		value, sig, err := i.exec(s.Body)
		if err != nil {
			return nil, sigNone, err
		}
		switch sig {
		case sigBreak:
			return result, sigNone, nil
		case sigContinue:
			continue
		case sigReturn:
			return value, sigReturn, nil
		}
		result = value
	}
}

// execSwitch evaluates the subject once and runs the first claw whose value
// is equal to it, falling back to default. There is no fall-through.
func (i *Interpreter) execSwitch(s *ast.SwitchStatement) (*runtime.Value, signal, error) {
	subject, err := i.eval(s.Discriminant)
	if err != nil {
		return nil, sigNone, err
	}

	var defaultCase *ast.SwitchCase
	for _, c := range s.Cases {
		if c.Test == nil {
			if defaultCase == nil {
				defaultCase = c
			}
			continue
		}
		test, err := i.eval(c.Test)
		if err != nil {
			return nil, sigNone, err
		}
		if runtime.Equals(subject, test) {
			return i.execStatements(c.Consequent)
		}
	}

	if defaultCase != nil {
		return i.execStatements(defaultCase.Consequent)
	}
	return runtime.Undefined, sigNone, nil
}

func paramNames(params []*ast.Identifier) []string {
	names := make([]string, len(params))
	for idx, p := range params {
		names[idx] = p.Value
	}
	return names
}
