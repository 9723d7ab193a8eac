package analyzer

import (
	"github.com/funvibe/tigersem/internal/config"
	"github.com/funvibe/tigersem/internal/env"
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/typesystem"
)

type builtinFunc struct {
	name   string
	params []typesystem.Field
	result typesystem.Type
}

func param(name string, ty typesystem.Type) typesystem.Field {
	return typesystem.Field{Name: symbols.Intern(name), Type: ty}
}

var builtinFuncs = []builtinFunc{
	{config.PrintFuncName, []typesystem.Field{param("s", typesystem.String)}, typesystem.Void},
	{config.FlushFuncName, nil, typesystem.Void},
	{config.GetcharFuncName, nil, typesystem.String},
	{config.OrdFuncName, []typesystem.Field{param("s", typesystem.String)}, typesystem.Int},
	{config.ChrFuncName, []typesystem.Field{param("i", typesystem.Int)}, typesystem.String},
	{config.SizeFuncName, []typesystem.Field{param("s", typesystem.String)}, typesystem.Int},
	{config.SubstringFuncName, []typesystem.Field{
		param("s", typesystem.String), param("first", typesystem.Int), param("n", typesystem.Int),
	}, typesystem.String},
	{config.ConcatFuncName, []typesystem.Field{param("s1", typesystem.String), param("s2", typesystem.String)}, typesystem.String},
	{config.NotFuncName, []typesystem.Field{param("i", typesystem.Int)}, typesystem.Int},
	{config.ExitFuncName, []typesystem.Field{param("i", typesystem.Int)}, typesystem.Void},
}

// RegisterBuiltins binds the primitive type names and the standard library
// functions into the current scope of e. Call it on a fresh environment so
// that they sit in the outermost scope and programs may shadow them.
func RegisterBuiltins(e *env.Env) {
	e.Types.Put(symbols.Intern(config.IntTypeName), typesystem.Int)
	e.Types.Put(symbols.Intern(config.StringTypeName), typesystem.String)

	for _, f := range builtinFuncs {
		e.Values.Put(symbols.Intern(f.name), &env.FunEntry{Formals: f.params, Result: f.result})
	}
}

// BuiltinNames lists the standard library function names in registration order.
func BuiltinNames() []string {
	names := make([]string, len(builtinFuncs))
	for i, f := range builtinFuncs {
		names[i] = f.name
	}
	return names
}
