package builtins

import (
	"math"
	"math/rand"

	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/runtime"
)

// mewthGlobal builds the Mewth object, the cat-themed math library:
// pounce=floor, leap=ceil, curl=round, lick=abs, alpha=max, kitten=min,
// chase=random, dig=sqrt, scratch=pow, tailDirection=sign.
func mewthGlobal() *runtime.Value {
	return runtime.NewObject(map[string]*runtime.Value{
		"pounce":        mewthUnary("pounce", math.Floor),
		"leap":          mewthUnary("leap", math.Ceil),
		"curl":          mewthUnary("curl", math.Round),
		"lick":          mewthUnary("lick", math.Abs),
		"alpha":         mewthFold("alpha", math.Inf(-1), math.Max),
		"kitten":        mewthFold("kitten", math.Inf(1), math.Min),
		"chase":         runtime.NewNative("chase", nativeMewthChase),
		"dig":           runtime.NewNative("dig", nativeMewthDig),
		"scratch":       runtime.NewNative("scratch", nativeMewthScratch),
		"tailDirection": runtime.NewNative("tailDirection", nativeMewthTailDirection),
		"PI":            runtime.NewNumber(math.Pi),
	})
}

func mewthUnary(name string, fn func(float64) float64) *runtime.Value {
	return runtime.NewNative(name, func(args []*runtime.Value) (*runtime.Value, error) {
		if len(args) != 1 {
			return nil, mewerr.Runtime("Mewth.%s requires exactly one number argument", name)
		}
		if args[0].Type != runtime.TypeNumber {
			return nil, mewerr.Runtime("Mewth.%s requires a number, got %s", name, args[0].Type)
		}
		return runtime.NewNumber(fn(args[0].Number)), nil
	})
}

func mewthFold(name string, start float64, fn func(float64, float64) float64) *runtime.Value {
	return runtime.NewNative(name, func(args []*runtime.Value) (*runtime.Value, error) {
		if len(args) == 0 {
			return nil, mewerr.Runtime("Mewth.%s requires at least one number argument", name)
		}
		acc := start
		for _, arg := range args {
			if arg.Type != runtime.TypeNumber {
				return nil, mewerr.Runtime("Mewth.%s requires numbers, got %s", name, arg.Type)
			}
			acc = fn(acc, arg.Number)
		}
		return runtime.NewNumber(acc), nil
	})
}

func nativeMewthChase(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 0 {
		return nil, mewerr.Runtime("Mewth.chase doesn't take any arguments")
	}
	return runtime.NewNumber(rand.Float64()), nil
}

func nativeMewthDig(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, mewerr.Runtime("Mewth.dig requires exactly one number argument")
	}
	if args[0].Type != runtime.TypeNumber {
		return nil, mewerr.Runtime("Mewth.dig requires a number, got %s", args[0].Type)
	}
	if args[0].Number < 0 {
		return nil, mewerr.Runtime("Cannot compute square root of negative number")
	}
	return runtime.NewNumber(math.Sqrt(args[0].Number)), nil
}

func nativeMewthScratch(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 2 {
		return nil, mewerr.Runtime("Mewth.scratch requires exactly two number arguments")
	}
	if args[0].Type != runtime.TypeNumber || args[1].Type != runtime.TypeNumber {
		return nil, mewerr.Runtime("Mewth.scratch requires two numbers, got %s and %s",
			args[0].Type, args[1].Type)
	}
	return runtime.NewNumber(math.Pow(args[0].Number, args[1].Number)), nil
}

func nativeMewthTailDirection(args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, mewerr.Runtime("Mewth.tailDirection requires exactly one number argument")
	}
	if args[0].Type != runtime.TypeNumber {
		return nil, mewerr.Runtime("Mewth.tailDirection requires a number, got %s", args[0].Type)
	}
	n := args[0].Number
	switch {
	case n > 0:
		return runtime.NewNumber(1), nil
	case n < 0:
		return runtime.NewNumber(-1), nil
	}
	return runtime.NewNumber(0), nil
}
