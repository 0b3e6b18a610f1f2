package ast

// RecursionChecker decides whether a function's name occurs, unshadowed,
// anywhere in its own body. Lowering uses the verdict to pick between
// plain and self-referential function terms.
//
// The pass keeps one flag per scope: whether the target name is
// currently shadowed. Entering a block pushes the current flag (a
// nested scope inherits its parent's shadow status); exiting pops it,
// restoring the parent's view exactly.
type RecursionChecker struct {
	Base
	target   string
	isRec    bool
	shadowed bool
	stack    []bool
}

// IsRecursive runs the check with the target function's name and body.
func IsRecursive(name string, body *Block) bool {
	rc := &RecursionChecker{target: name}
	rc.Self = rc
	rc.VisitBlock(body)
	if len(rc.stack) != 0 {
		// Reaching this is a pass bug, never a user error.
		panic("ast: scope stack not empty after recursion check")
	}
	return rc.isRec
}

func (rc *RecursionChecker) pushScope() {
	rc.stack = append(rc.stack, rc.shadowed)
}

func (rc *RecursionChecker) popScope() {
	if len(rc.stack) == 0 {
		panic("ast: popping an empty scope stack")
	}
	rc.shadowed = rc.stack[len(rc.stack)-1]
	rc.stack = rc.stack[:len(rc.stack)-1]
}

// VisitName records a recursive use when the target name appears while
// not shadowed in the current scope.
func (rc *RecursionChecker) VisitName(n *Ident) {
	if !rc.shadowed && n.Name == rc.target {
		rc.isRec = true
	}
	SuperName(rc.Self, n)
}

// VisitLetBind marks the target shadowed for the rest of the scope when
// the binding reuses its name.
func (rc *RecursionChecker) VisitLetBind(n *LetBind) {
	if n.Name.Name == rc.target {
		rc.shadowed = true
	}
	SuperLetBind(rc.Self, n)
}

// VisitFnDef marks the target shadowed when an inner definition reuses
// its name.
func (rc *RecursionChecker) VisitFnDef(n *FnDef) {
	if n.Name != nil && n.Name.Name == rc.target {
		rc.shadowed = true
	}
	SuperFnDef(rc.Self, n)
}

// VisitFnRecDef behaves like VisitFnDef; an inner recursive definition
// shadows the target just the same.
func (rc *RecursionChecker) VisitFnRecDef(n *FnRecDef) {
	if n.Name.Name == rc.target {
		rc.shadowed = true
	}
	SuperFnRecDef(rc.Self, n)
}

// VisitBlock brackets the descent with a scope push/pop so shadowing
// introduced inside the block never leaks to the parent.
func (rc *RecursionChecker) VisitBlock(b *Block) {
	rc.pushScope()
	SuperBlock(rc.Self, b)
	rc.popScope()
}
