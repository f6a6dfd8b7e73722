package analyze

import (
	"strings"

	"ferroc/ir"
	"ferroc/typing"
)

// inferCall resolves the callee of a call expression — against the stub
// registry first for attribute-form calls, then against locally declared
// functions/methods — and tags the call as a propagation site when it sits
// inside a function whose own return type is Fallible with a compatible
// error type (spec.md §4.4's propagation rule).
func (a *Analyzer) inferCall(n *ir.ExprCall) typing.DataType {
	for _, arg := range n.Args {
		a.inferExpr(arg.Value)
	}

	result, needsResult := a.resolveCalleeResult(n)
	if needsResult {
		a.tagPropagation(n, result)
	}
	return result
}

// resolveCalleeResult returns the call's result type and whether the
// underlying mapping declares that it yields a fallible (Result) value.
func (a *Analyzer) resolveCalleeResult(n *ir.ExprCall) (typing.DataType, bool) {
	switch callee := n.Callee.(type) {
	case *ir.ExprAttr:
		recvType := a.inferExpr(callee.Root)
		typeName := namedTypePath(recvType)
		// A true instance method (typeName.attr keyed against a receiver
		// object's own type) is tried first; a qualified stdlib/stub
		// module call (`time.sleep`, `os.getcwd`) is keyed the same way
		// but registered as a free function under its full dotted name,
		// since the module name is itself the "receiver" in SRC's
		// `module.func(...)` syntax.
		if mapping, ok := a.stubs.LookupMethod(typeName, callee.Attr); ok {
			return a.resultTypeOf(mapping.Returns, mapping.NeedsResult)
		}
		if mapping, ok := a.stubs.LookupFunction(typeName + "." + callee.Attr); ok {
			return a.resultTypeOf(mapping.Returns, mapping.NeedsResult)
		}
		if m, ok := a.lookupUserMethod(typeName, callee.Attr); ok {
			return a.functionResultType(m)
		}
		return typing.Unknown{Label: "method:" + callee.Attr}, false
	case *ir.ExprIdent:
		if result, ok := a.resolveConstructorCall(callee.Name, n); ok {
			return result, false
		}
		if mapping, ok := a.stubs.LookupFunction(callee.Name); ok {
			return a.resultTypeOf(mapping.Returns, mapping.NeedsResult)
		}
		sym, ok := a.currentScope().Lookup(callee.Name)
		callee.Sym = sym
		if !ok {
			return typing.Unknown{Label: "call:" + callee.Name}, false
		}
		if fnType, ok := sym.Type.(typing.Function); ok {
			if fallible, ok := fnType.Return.(typing.Fallible); ok {
				return fallible, true
			}
			return fnType.Return, false
		}
		if fn, ok := a.lookupModuleFunc(callee.Name); ok {
			return a.functionResultType(fn)
		}
		return typing.Unknown{Label: "call:" + callee.Name}, false
	default:
		return typing.Unknown{Label: "call"}, false
	}
}

// resolveConstructorCall recognizes SRC's Ok/Err/Some value constructors
// (spec.md §4.1's accepted grammar, e.g. `return Ok(42)`). These names carry
// no declared signature of their own, so their result type is resolved
// against the enclosing function's declared Fallible/Optional return type —
// the "other half" of the pair (Ok's Err, Err's Ok) is taken from context,
// falling back to Unknown outside a compatible enclosing function.
func (a *Analyzer) resolveConstructorCall(name string, n *ir.ExprCall) (typing.DataType, bool) {
	if name != "Ok" && name != "Err" && name != "Some" || len(n.Args) != 1 {
		return nil, false
	}
	inner := a.inferExpr(n.Args[0].Value)

	var declared typing.DataType
	if fn := a.currentFunc(); fn != nil {
		declared = a.resolveTypeExpr(fn.Return)
	}

	switch name {
	case "Some":
		if opt, ok := declared.(typing.Optional); ok {
			return opt, true
		}
		return typing.Optional{Inner: inner}, true
	case "Ok":
		if fallible, ok := declared.(typing.Fallible); ok {
			return typing.Fallible{Ok: inner, Err: fallible.Err}, true
		}
		return typing.Fallible{Ok: inner, Err: typing.Unknown{Label: "Err"}}, true
	default: // "Err"
		if fallible, ok := declared.(typing.Fallible); ok {
			return typing.Fallible{Ok: fallible.Ok, Err: inner}, true
		}
		return typing.Fallible{Ok: typing.Unknown{Label: "Ok"}, Err: inner}, true
	}
}

func (a *Analyzer) resultTypeOf(returns string, needsResult bool) (typing.DataType, bool) {
	if returns == "" {
		return typing.Unknown{Label: "stub-return"}, needsResult
	}
	// A parenthesized, comma-separated Returns string (e.g. the channel
	// stub's "(Sender<i64>, Receiver<i64>)") describes a tuple-returning
	// builtin, so a destructuring assignment of its result can bind each
	// name to its own element type instead of one opaque Named blob.
	if strings.HasPrefix(returns, "(") && strings.HasSuffix(returns, ")") {
		parts := strings.Split(returns[1:len(returns)-1], ",")
		elems := make([]typing.DataType, len(parts))
		for i, p := range parts {
			elems[i] = a.namedStubType(strings.TrimSpace(p))
		}
		return typing.Tuple{Elems: elems}, needsResult
	}
	return a.namedStubType(returns), needsResult
}

func (a *Analyzer) namedStubType(name string) typing.DataType {
	if mapping, ok := a.stubs.LookupType(name); ok {
		return typing.Named{Path: mapping.DstName}
	}
	return typing.Named{Path: name}
}

func (a *Analyzer) functionResultType(fn *ir.DefFunc) (typing.DataType, bool) {
	ret := a.resolveTypeExpr(fn.Return)
	if fallible, ok := ret.(typing.Fallible); ok {
		return fallible, true
	}
	return ret, false
}

func (a *Analyzer) lookupModuleFunc(name string) (*ir.DefFunc, bool) {
	for _, def := range a.module.Defs {
		if fn, ok := def.(*ir.DefFunc); ok && fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

func (a *Analyzer) lookupUserMethod(typeName, method string) (*ir.DefFunc, bool) {
	for _, def := range a.module.Defs {
		cls, ok := def.(*ir.DefClass)
		if !ok || cls.Name != typeName {
			continue
		}
		for _, m := range cls.Methods {
			if m.Name == method {
				return m, true
			}
		}
	}
	return nil, false
}

func namedTypePath(t typing.DataType) string {
	switch n := t.(type) {
	case typing.Named:
		return n.Path
	case typing.Primitive:
		return n.Repr()
	case typing.Sequence:
		return "list"
	case typing.Mapping:
		return "dict"
	case typing.UnorderedSet:
		return "set"
	default:
		return t.Repr()
	}
}

// tagPropagation marks call as a propagation site when the enclosing
// function's declared return is Fallible with an error type compatible
// with the callee's own Fallible error type.
func (a *Analyzer) tagPropagation(call *ir.ExprCall, result typing.DataType) {
	fallible, ok := result.(typing.Fallible)
	if !ok {
		return
	}
	fn := a.currentFunc()
	if fn == nil {
		return
	}
	enclosingRet := a.resolveTypeExpr(fn.Return)
	enclosingFallible, ok := enclosingRet.(typing.Fallible)
	if !ok {
		return
	}
	if typing.IsUnknown(enclosingFallible.Err) || typing.IsUnknown(fallible.Err) || typing.Equals(enclosingFallible.Err, fallible.Err) {
		a.Notes.Propagation[call] = true
	}
}
