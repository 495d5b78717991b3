package vbscript

import "strings"

// branch is one arm of a conditional: the translated condition and the
// expression the target variable takes when it matches.
type branch struct {
	cond string
	rhs  string
}

// blockParser walks a classified line slice and reduces If chains and
// Select Case blocks to single conditional expressions. Each parse method
// takes the index of the block header and the base expression (the target
// variable's value entering the block) and returns the block's expression
// together with the index of the first line after the block.
type blockParser struct {
	lines []Line
	scope *Scope
}

func newBlockParser(lines []Line, scope *Scope) *blockParser {
	return &blockParser{lines: lines, scope: scope}
}

// atEnd reports whether i is past the last line.
func (p *blockParser) atEnd(i int) bool {
	return i >= len(p.lines)
}

// parseIfChain parses `If cond Then ... [ElseIf cond Then ...]* [Else ...]
// End If`. Conditions are checked in order; the implicit else value is the
// incoming base. nested selects whether the result renders on one line
// (inside a branch body) or in the indented multi-line form (top level).
func (p *blockParser) parseIfChain(i int, base string, nested bool) (string, int, error) {
	header := p.lines[i]
	if header.Kind != LineIfHeader {
		return "", i, structuralErr("expected If header", header)
	}

	var branches []branch

	cond := p.scope.RewriteExpr(header.Text)

	rhs, next, err := p.parseBranchBody(i+1, base, ifBodyStops)
	if err != nil {
		return "", i, err
	}

	branches = append(branches, branch{cond: cond, rhs: rhs})
	i = next

	for !p.atEnd(i) && p.lines[i].Kind == LineElseIfHeader {
		cond = p.scope.RewriteExpr(p.lines[i].Text)

		rhs, next, err = p.parseBranchBody(i+1, base, ifBodyStops)
		if err != nil {
			return "", i, err
		}

		branches = append(branches, branch{cond: cond, rhs: rhs})
		i = next
	}

	elseRHS := base

	if !p.atEnd(i) && p.lines[i].Kind == LineElseHeader {
		elseRHS, next, err = p.parseBranchBody(i+1, base, ifBodyStops)
		if err != nil {
			return "", i, err
		}

		i = next
	}

	if p.atEnd(i) || p.lines[i].Kind != LineEndIf {
		return "", i, structuralErr("unterminated If block", header)
	}

	return renderCase(branches, elseRHS, !nested), i + 1, nil
}

// parseSelectCase parses `Select Case selector ... End Select`. Every case
// body starts from the block's incoming base: Select Case branches never
// chain off each other. A single-value case renders as equality, a
// multi-value case as set membership.
func (p *blockParser) parseSelectCase(i int, base string, nested bool) (string, int, error) {
	header := p.lines[i]
	if header.Kind != LineSelectCaseHeader {
		return "", i, structuralErr("expected Select Case header", header)
	}

	selector := p.scope.RewriteExpr(header.Text)

	var (
		branches []branch
		elseRHS  = base
	)

	i++

	for {
		if p.atEnd(i) {
			return "", i, structuralErr("unterminated Select Case block", header)
		}

		line := p.lines[i]

		switch line.Kind {
		case LineEndSelect:
			return renderCase(branches, elseRHS, !nested), i + 1, nil

		case LineCaseHeader:
			values := ParseCaseValues(line.Text)

			rhs, next, err := p.parseBranchBody(i+1, base, caseBodyStops)
			if err != nil {
				return "", i, err
			}

			branches = append(branches, branch{cond: caseCondition(selector, values), rhs: rhs})
			i = next

		case LineCaseElseHeader:
			rhs, next, err := p.parseBranchBody(i+1, base, caseBodyStops)
			if err != nil {
				return "", i, err
			}

			elseRHS = rhs
			i = next

		case LineBlank:
			i++

		default:
			return "", i, unsupportedErr(line)
		}
	}
}

// stop sets for branch bodies: the line kinds that end the body and hand
// control back to the enclosing block parser.
var (
	ifBodyStops = map[LineKind]bool{
		LineElseIfHeader: true,
		LineElseHeader:   true,
		LineEndIf:        true,
	}
	caseBodyStops = map[LineKind]bool{
		LineCaseHeader:     true,
		LineCaseElseHeader: true,
		LineEndSelect:      true,
	}
)

// parseBranchBody parses the statements of one branch, threading the
// accumulator: each assignment to the target rewrites on top of the previous
// value, and a nested block consumes the current accumulator as its base and
// its result becomes the accumulator for the rest of the branch. A branch
// with no target assignment returns base unchanged (no-op fallthrough).
func (p *blockParser) parseBranchBody(i int, base string, stops map[LineKind]bool) (string, int, error) {
	acc := base

	for !p.atEnd(i) {
		line := p.lines[i]

		if stops[line.Kind] {
			return acc, i, nil
		}

		switch line.Kind {
		case LineBlank, LineFunctionEnd:
			i++

		case LineIfHeader:
			nestedExpr, next, err := p.parseIfChain(i, acc, true)
			if err != nil {
				return "", i, err
			}

			acc = nestedExpr
			i = next

		case LineSelectCaseHeader:
			nestedExpr, next, err := p.parseSelectCase(i, acc, true)
			if err != nil {
				return "", i, err
			}

			acc = nestedExpr
			i = next

		case LineAssignment:
			if line.Name != p.scope.Target() {
				return "", i, structuralErr("assignment to non-target variable inside block", line)
			}

			acc = p.scope.RewriteUpdate(line.Text, acc)
			i++

		default:
			return "", i, unsupportedErr(line)
		}
	}

	return acc, i, nil
}

// caseCondition renders the match test for one case branch.
func caseCondition(selector string, values []string) string {
	if len(values) == 1 {
		return selector + " = " + values[0]
	}

	return selector + " IN (" + strings.Join(values, ", ") + ")"
}

// renderCase emits a CASE WHEN ... THEN ... ELSE ... END expression. The
// multi-line form matches the shape produced for top-level blocks; nested
// blocks render on one line so they can sit inside a THEN arm.
func renderCase(branches []branch, elseExpr string, multiline bool) string {
	if multiline {
		var b strings.Builder

		b.WriteString("CASE")

		for _, br := range branches {
			b.WriteString("\n  WHEN " + br.cond + " THEN " + br.rhs)
		}

		b.WriteString("\n  ELSE " + elseExpr)
		b.WriteString("\nEND")

		return b.String()
	}

	var b strings.Builder

	b.WriteString("CASE")

	for _, br := range branches {
		b.WriteString(" WHEN " + br.cond + " THEN " + br.rhs)
	}

	b.WriteString(" ELSE " + elseExpr + " END")

	return b.String()
}
