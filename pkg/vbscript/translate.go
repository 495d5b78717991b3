// Package vbscript translates ArcGIS VBScript label definitions into QGIS
// label expressions. The imperative source (sequential assignments,
// If/ElseIf/Else chains, Select Case blocks, self-referential updates) is
// rewritten into a single declarative expression built from with_variable
// bindings, CASE WHEN conditionals, and @name bound references, such that
// evaluating the expression reproduces running the source in order.
package vbscript

import "strings"

// Translation is the result of translating one label definition.
type Translation struct {
	// Expression is the target-language expression, or the bare field name
	// when IsExpression is false.
	Expression string

	// IsExpression distinguishes a full expression from a literal field
	// name. It is false only for the bare-field input shape.
	IsExpression bool
}

// Translate converts one ArcGIS label definition to a QGIS expression. The
// input is sniffed into one of three shapes, in priority order: a structured
// FindLabel program (function wrapper present), a one-line expression
// fragment (contains whitespace), or a bare field name. Translate is a pure
// function; concurrent callers need no coordination.
func Translate(text string) (Translation, error) {
	text = strings.TrimSpace(decodeEntities(text))

	switch {
	case isStructuredProgram(text):
		expr, err := translateProgram(text)
		if err != nil {
			return Translation{}, err
		}

		return Translation{Expression: expr, IsExpression: true}, nil

	case strings.ContainsAny(text, " \t\n"):
		return Translation{Expression: NormalizeFragment(text), IsExpression: true}, nil

	default:
		return Translation{Expression: StripFieldName(text), IsExpression: false}, nil
	}
}

// isStructuredProgram reports whether the first line carries the function
// wrapper convention.
func isStructuredProgram(text string) bool {
	first, _, _ := strings.Cut(text, "\n")

	return functionHeaderPattern.MatchString(first)
}

// translateProgram translates a full FindLabel program: initial assignment
// chain, ordered update blocks, trailing return assignment, all assembled
// into nested with_variable bindings around a terminal @target reference.
func translateProgram(text string) (string, error) {
	all := ClassifyLines(text)

	funcName := ""
	if len(all) > 0 && all[0].Kind == LineFunctionHeader {
		funcName = all[0].Name
	}

	lines := stripFunctionWrapper(all)

	inits, rest, err := collectInitialAssignments(lines, funcName)
	if err != nil {
		return "", err
	}

	names := make([]string, len(inits))
	for i, init := range inits {
		names[i] = init.Name
	}

	scope := NewScope(names)

	initExprs := make([]string, len(inits))
	for i, init := range inits {
		initExprs[i] = scope.RewriteInitializer(init.Text, names[:i])
	}

	updates, err := collectUpdateBlocks(rest, scope, funcName)
	if err != nil {
		return "", err
	}

	expr := scope.TargetRef()

	for i := len(updates) - 1; i >= 0; i-- {
		expr = bindVariable(scope.Target(), updates[i], expr)
	}

	for i := len(inits) - 1; i >= 0; i-- {
		expr = bindVariable(inits[i].Name, initExprs[i], expr)
	}

	return expr, nil
}

// stripFunctionWrapper drops the function signature and terminator lines.
// The wrapper carries no meaning beyond the naming convention.
func stripFunctionWrapper(lines []Line) []Line {
	out := make([]Line, 0, len(lines))

	for i, line := range lines {
		if line.Kind == LineFunctionEnd {
			continue
		}

		if line.Kind == LineFunctionHeader && i == 0 {
			continue
		}

		out = append(out, line)
	}

	return out
}

// collectInitialAssignments consumes leading assignments up to the first
// control-flow header. At least one assignment is required: the last one
// names the target variable. A bare-identifier assignment to the function
// name is the return line, not an initializer.
func collectInitialAssignments(lines []Line, funcName string) ([]Line, []Line, error) {
	var inits []Line

	for i, line := range lines {
		switch line.Kind {
		case LineBlank:
			continue

		case LineAssignment:
			if line.Name == funcName && isReturnRHS(line.Text) {
				continue
			}

			inits = append(inits, line)

		case LineIfHeader, LineSelectCaseHeader:
			if len(inits) == 0 {
				return nil, nil, structuralErr("no initial assignment before control flow", line)
			}

			return inits, lines[i:], nil

		default:
			return nil, nil, unsupportedErr(line)
		}
	}

	if len(inits) == 0 {
		return nil, nil, structuralErr("no initial assignments found", Line{Num: 1})
	}

	return inits, nil, nil
}

// collectUpdateBlocks parses the remaining body in source order. Each
// top-level block takes @target as its base: sequencing across blocks comes
// from the nested rebinding of the target variable, so a later block always
// sees the value produced by the one before it. The only assignment allowed
// between blocks is the return line: the function name (or the target
// itself) set to the bare target variable. It carries no value and is
// dropped; anything else changes state the translation would lose.
func collectUpdateBlocks(lines []Line, scope *Scope, funcName string) ([]string, error) {
	parser := newBlockParser(lines, scope)

	var updates []string

	i := 0

	for i < len(lines) {
		line := lines[i]

		switch line.Kind {
		case LineBlank:
			i++

		case LineIfHeader:
			expr, next, err := parser.parseIfChain(i, scope.TargetRef(), false)
			if err != nil {
				return nil, err
			}

			updates = append(updates, expr)
			i = next

		case LineSelectCaseHeader:
			expr, next, err := parser.parseSelectCase(i, scope.TargetRef(), false)
			if err != nil {
				return nil, err
			}

			updates = append(updates, expr)
			i = next

		case LineAssignment:
			if !isReturnRHS(line.Text) || line.Text != scope.Target() ||
				(line.Name != funcName && line.Name != scope.Target()) {
				return nil, structuralErr("assignment outside a block body", line)
			}

			i++

		default:
			return nil, unsupportedErr(line)
		}
	}

	return updates, nil
}

// bindVariable wraps body in a scoped binding of name to value.
func bindVariable(name, value, body string) string {
	return "with_variable('" + name + "', " + value + ", " + body + ")"
}
