package analyze

import (
	"ferroc/ir"
	"ferroc/typing"
)

// mutatingMethods names the SRC container methods that require exclusive
// access to their receiver, per spec.md §4.4's mutability rule.
var mutatingMethods = map[string]bool{
	"append": true, "extend": true, "insert": true, "remove": true,
	"pop": true, "clear": true, "sort": true, "reverse": true,
	"update": true, "add": true, "discard": true, "setdefault": true,
}

// analyzeMutability marks every local symbol passed as the receiver of a
// mutating method call, and the receiver half of a channel destructure, as
// Mutable, and sets each method's Mutates flag. Locals reassigned after
// declaration are marked earlier, by walkAssign during inference. Run as
// a dedicated pass over each function body (rather than folded into
// inferExpr) because a local's mutability can only be settled once every
// statement that might mutate it has been seen.
func (a *Analyzer) analyzeMutability() {
	for _, def := range a.module.Defs {
		switch d := def.(type) {
		case *ir.DefFunc:
			a.markMutations(d.Body)
		case *ir.DefClass:
			for _, m := range d.Methods {
				a.markMutations(m.Body)
				m.Mutates = mutatesSelf(m.Body)
			}
		}
	}
}

// mutatesSelf reports whether body reassigns a `self.field` attribute or
// invokes a mutating method through `self`, which decides whether the
// emitter declares the method's receiver `&mut self` or `&self`.
func mutatesSelf(body []ir.Stmt) bool {
	mutates := false
	walkBody(body, func(s ir.Stmt) {
		assign, ok := s.(*ir.StmtAssign)
		if !ok {
			return
		}
		for _, t := range assign.Targets {
			if attr, ok := t.(*ir.ExprAttr); ok && isSelfRoot(attr.Root) {
				mutates = true
			}
		}
	}, func(e ir.Expr) {
		call, ok := e.(*ir.ExprCall)
		if !ok {
			return
		}
		attr, ok := call.Callee.(*ir.ExprAttr)
		if !ok || !mutatingMethods[attr.Attr] {
			return
		}
		if isSelfRoot(attr.Root) {
			mutates = true
		}
	})
	return mutates
}

func isSelfRoot(e ir.Expr) bool {
	switch n := e.(type) {
	case *ir.ExprIdent:
		return n.Name == "self"
	case *ir.ExprAttr:
		return isSelfRoot(n.Root)
	default:
		return false
	}
}

func (a *Analyzer) markMutations(body []ir.Stmt) {
	walkBody(body, func(s ir.Stmt) {
		a.markChannelDestructure(s)
	}, func(e ir.Expr) {
		call, ok := e.(*ir.ExprCall)
		if !ok {
			return
		}
		attr, ok := call.Callee.(*ir.ExprAttr)
		if !ok || !mutatingMethods[attr.Attr] {
			return
		}
		if recv, ok := attr.Root.(*ir.ExprIdent); ok && recv.Sym != nil {
			recv.Sym.Mutable = ir.MutMutable
		}
	})
}

// markChannelDestructure marks the receiving half of a two-element
// destructuring assignment mutable when its RHS is a stub-backed call
// returning a two-element tuple (spec.md §5: "Receiver-of-channel bindings
// obtained from a two-element destructuring of a channel constructor are
// automatically marked mutable"). The receiving end of a channel needs
// exclusive access to poll it even though SRC never reassigns the name
// itself, so ordinary reassignment-based mutability tracking never catches
// this case.
func (a *Analyzer) markChannelDestructure(s ir.Stmt) {
	assign, ok := s.(*ir.StmtAssign)
	if !ok || len(assign.Targets) != 2 {
		return
	}
	call, ok := assign.Value.(*ir.ExprCall)
	if !ok {
		return
	}
	ident, ok := call.Callee.(*ir.ExprIdent)
	if !ok {
		return
	}
	if _, ok := a.stubs.LookupFunction(ident.Name); !ok {
		return
	}
	tup, ok := a.Notes.TypeOf(assign.Value).(typing.Tuple)
	if !ok || len(tup.Elems) != 2 {
		return
	}
	recv, ok := assign.Targets[1].(*ir.ExprIdent)
	if !ok || recv.Sym == nil {
		return
	}
	recv.Sym.Mutable = ir.MutMutable
}
