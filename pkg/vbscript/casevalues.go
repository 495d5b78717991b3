package vbscript

import (
	"regexp"
	"strings"
)

var numericTokenPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ParseCaseValues parses the token list following a Case keyword into target
// literals. Tokens are split on top-level commas (commas inside quoted
// literals do not split). Signed integer and decimal tokens are kept
// verbatim; everything else becomes a target string literal with one layer
// of source quoting stripped and embedded single quotes doubled.
func ParseCaseValues(text string) []string {
	tokens := splitTopLevel(text)

	values := make([]string, 0, len(tokens))

	for _, token := range tokens {
		token = strings.TrimSpace(token)

		switch {
		case numericTokenPattern.MatchString(token):
			values = append(values, token)
		case len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`):
			values = append(values, quoteCaseLiteral(token[1:len(token)-1]))
		default:
			values = append(values, quoteCaseLiteral(token))
		}
	}

	return values
}

func quoteCaseLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, singleQuoteEscapeSrc, singleQuoteEscapeDst) + "'"
}

// splitTopLevel splits on commas that are not inside a quoted span.
func splitTopLevel(s string) []string {
	var (
		parts []string
		quote byte
		start int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}
