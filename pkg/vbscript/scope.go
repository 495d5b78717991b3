package vbscript

import "sort"

// Scope tracks the named variables live at a point in the program and the
// distinguished target variable whose value the translated expression
// ultimately yields. Substitution never re-derives a variable: external
// references resolve to the @name bound by an enclosing with_variable, and
// self references of the target resolve to the accumulator expression for
// the branch being parsed.
type Scope struct {
	vars   []string
	target string
}

// NewScope creates a scope over the ordered initial-assignment variable
// names. The target is, by convention, the last variable assigned before the
// first control-flow construct.
func NewScope(vars []string) *Scope {
	target := ""
	if len(vars) > 0 {
		target = vars[len(vars)-1]
	}

	return &Scope{vars: vars, target: target}
}

// Target returns the target variable name.
func (s *Scope) Target() string {
	return s.target
}

// TargetRef returns the bound reference to the target variable (@name).
func (s *Scope) TargetRef() string {
	return boundRefPrefix + s.target
}

// Vars returns the ordered scope variable names.
func (s *Scope) Vars() []string {
	out := make([]string, len(s.vars))
	copy(out, s.vars)

	return out
}

// RewriteExpr normalizes an expression fragment and rewrites every scope
// variable, target included, to its bound reference. Used for conditions,
// selectors, and initializers.
func (s *Scope) RewriteExpr(expr string) string {
	return substituteVars(normalizeExpr(expr), s.vars)
}

// RewriteInitializer normalizes an initial-assignment right-hand side with
// only the variables assigned before it in scope.
func (s *Scope) RewriteInitializer(expr string, assignedSoFar []string) string {
	return substituteVars(normalizeExpr(expr), assignedSoFar)
}

// RewriteUpdate normalizes a branch-body assignment to the target variable.
// Self references are rewritten to a parenthesized copy of current, the
// accumulator expression in force at this point of the branch; all other
// scope variables become bound references. This is what lets consecutive
// self-referential updates inside one branch compose into a single nested
// expression.
func (s *Scope) RewriteUpdate(expr, current string) string {
	out := normalizeExpr(expr)
	out = substituteIdentifier(out, s.target, "("+current+")")

	others := make([]string, 0, len(s.vars))
	for _, v := range s.vars {
		if v != s.target {
			others = append(others, v)
		}
	}

	return substituteVars(out, others)
}

// substituteVars rewrites each named variable, longest name first so that a
// name sharing a prefix with another never clobbers it mid-token.
func substituteVars(expr string, vars []string) string {
	ordered := make([]string, len(vars))
	copy(ordered, vars)
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	for _, v := range ordered {
		expr = substituteIdentifier(expr, v, boundRefPrefix+v)
	}

	return expr
}
