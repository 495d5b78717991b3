package vbscript

import (
	"regexp"
	"strings"
)

// LineKind tags one logical source line with its grammatical role.
type LineKind int

const (
	// LineBlank is an empty line, a comment line, or a Dim declaration
	// (declarations carry no value and translate to nothing).
	LineBlank LineKind = iota
	// LineAssignment is `name = rhs`.
	LineAssignment
	// LineIfHeader is `If cond Then`.
	LineIfHeader
	// LineElseIfHeader is `ElseIf cond Then`.
	LineElseIfHeader
	// LineElseHeader is a bare `Else`.
	LineElseHeader
	// LineEndIf is `End If`.
	LineEndIf
	// LineSelectCaseHeader is `Select Case selector`.
	LineSelectCaseHeader
	// LineCaseHeader is `Case v1, v2, ...`.
	LineCaseHeader
	// LineCaseElseHeader is `Case Else`.
	LineCaseElseHeader
	// LineEndSelect is `End Select`.
	LineEndSelect
	// LineFunctionHeader is the `Function Name(...)` wrapper line.
	LineFunctionHeader
	// LineFunctionEnd is `End Function`.
	LineFunctionEnd
	// LineUnknown is any non-blank line outside the supported grammar.
	LineUnknown
)

// Line is one classified source line. Name and Text carry the captured
// pieces for the kinds that have them: the assigned variable and its
// right-hand side for assignments, the condition for If/ElseIf headers, the
// selector for Select Case headers, and the value list for Case headers.
type Line struct {
	Kind LineKind
	Name string
	Text string
	Num  int
	Raw  string
}

var (
	functionHeaderPattern = regexp.MustCompile(`(?i)^\s*Function\s+(\w+)\s*\((.*?)\)\s*$`)
	functionEndPattern    = regexp.MustCompile(`(?i)^\s*End\s+Function\s*$`)
	ifHeaderPattern       = regexp.MustCompile(`(?i)^\s*If\s+(.+?)\s+Then\s*$`)
	elseIfHeaderPattern   = regexp.MustCompile(`(?i)^\s*ElseIf\s+(.+?)\s+Then\s*$`)
	elseHeaderPattern     = regexp.MustCompile(`(?i)^\s*Else\s*$`)
	endIfPattern          = regexp.MustCompile(`(?i)^\s*End\s+If\s*$`)
	selectCasePattern     = regexp.MustCompile(`(?i)^\s*Select\s+Case\s+(.+?)\s*$`)
	caseHeaderPattern     = regexp.MustCompile(`(?i)^\s*Case\s+(.+?)\s*$`)
	endSelectPattern      = regexp.MustCompile(`(?i)^\s*End\s+Select\s*$`)
	dimPattern            = regexp.MustCompile(`(?i)^\s*(?:Re)?Dim\b`)
	assignPattern         = regexp.MustCompile(`^\s*(\w+)\s*=\s*(.+?)\s*$`)
	identPattern          = regexp.MustCompile(`^\w+$`)

	// unsupportedKeywordPattern matches procedural constructs the grammar
	// excludes: loops, subroutines, early exits, jumps.
	unsupportedKeywordPattern = regexp.MustCompile(
		`(?i)^\s*(For|Next|Do|Loop|While|Wend|Sub|Call|Exit|GoTo|On)\b`)
)

// commentPrefix starts a full-line VBScript comment.
const commentPrefix = "'"

// ClassifyLine tags a single raw source line. num is the 1-based line number
// recorded for error reporting.
func ClassifyLine(raw string, num int) Line {
	trimmed := strings.TrimSpace(raw)

	line := Line{Num: num, Raw: raw}

	switch {
	case trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) || dimPattern.MatchString(trimmed):
		line.Kind = LineBlank
	case functionEndPattern.MatchString(trimmed):
		line.Kind = LineFunctionEnd
	case endIfPattern.MatchString(trimmed):
		line.Kind = LineEndIf
	case endSelectPattern.MatchString(trimmed):
		line.Kind = LineEndSelect
	case elseIfHeaderPattern.MatchString(trimmed):
		line.Kind = LineElseIfHeader
		line.Text = elseIfHeaderPattern.FindStringSubmatch(trimmed)[1]
	case elseHeaderPattern.MatchString(trimmed):
		line.Kind = LineElseHeader
	case ifHeaderPattern.MatchString(trimmed):
		line.Kind = LineIfHeader
		line.Text = ifHeaderPattern.FindStringSubmatch(trimmed)[1]
	case selectCasePattern.MatchString(trimmed):
		line.Kind = LineSelectCaseHeader
		line.Text = selectCasePattern.FindStringSubmatch(trimmed)[1]
	case caseHeaderPattern.MatchString(trimmed):
		line.Text = strings.TrimSpace(caseHeaderPattern.FindStringSubmatch(trimmed)[1])
		if strings.EqualFold(line.Text, "Else") {
			line.Kind = LineCaseElseHeader
			line.Text = ""
		} else {
			line.Kind = LineCaseHeader
		}
	case functionHeaderPattern.MatchString(trimmed):
		line.Kind = LineFunctionHeader
		line.Name = functionHeaderPattern.FindStringSubmatch(trimmed)[1]
	case unsupportedKeywordPattern.MatchString(trimmed):
		line.Kind = LineUnknown
	case assignPattern.MatchString(trimmed):
		m := assignPattern.FindStringSubmatch(trimmed)
		line.Kind = LineAssignment
		line.Name = m[1]
		line.Text = m[2]
	default:
		line.Kind = LineUnknown
	}

	return line
}

// ClassifyLines splits text into lines and classifies each one.
func ClassifyLines(text string) []Line {
	raw := strings.Split(text, "\n")

	lines := make([]Line, 0, len(raw))
	for i, r := range raw {
		lines = append(lines, ClassifyLine(r, i+1))
	}

	return lines
}

// isReturnRHS reports whether an assignment right-hand side is a bare
// identifier, the shape of the trailing `FindLabel = target` line.
func isReturnRHS(rhs string) bool {
	return identPattern.MatchString(rhs)
}
