package vbscript

import (
	"html"
	"regexp"
	"strings"
)

// Target-syntax tokens emitted by the normalizer.
const (
	concatOperator   = " || "
	inequalityTarget = "!="
	boundRefPrefix   = "@"
)

const (
	escapedDoubleQuote   = `\"`
	loneSingleQuoteLit   = `'\''`
	singleQuoteEscapeSrc = "'"
	singleQuoteEscapeDst = "''"
)

var (
	fieldRefPattern     = regexp.MustCompile(`\[([^\]\[]+)\]`)
	doubleQuotedPattern = regexp.MustCompile(`"([^"]*)"`)
	concatPattern       = regexp.MustCompile(`\s*&\s*`)
	plusPattern         = regexp.MustCompile(`\s*\+\s*`)
	andWordPattern      = regexp.MustCompile(`(?i)\s*\bAnd\b\s*`)
	orWordPattern       = regexp.MustCompile(`(?i)\s*\bOr\b\s*`)
	notWordPattern      = regexp.MustCompile(`(?i)\s*\bNot\b\s*`)
)

// applyOutsideQuotes applies fn to every segment of s that lies outside a
// quoted literal. Both single- and double-quoted spans are preserved
// verbatim; an unterminated quote protects the rest of the string.
func applyOutsideQuotes(s string, fn func(string) string) string {
	var out strings.Builder

	segStart := 0
	i := 0

	for i < len(s) {
		c := s[i]
		if c != '\'' && c != '"' {
			i++

			continue
		}

		end := strings.IndexByte(s[i+1:], c)
		if end < 0 {
			out.WriteString(fn(s[segStart:i]))
			out.WriteString(s[i:])

			return out.String()
		}

		out.WriteString(fn(s[segStart:i]))
		out.WriteString(s[i : i+end+2])

		i += end + 2
		segStart = i
	}

	out.WriteString(fn(s[segStart:]))

	return out.String()
}

// decodeEntities decodes HTML entity escapes carried over from the source
// container (e.g. &lt; &gt; &amp;).
func decodeEntities(s string) string {
	return html.UnescapeString(s)
}

// singleQuoteStrings converts source double-quoted string literals to target
// single-quoted literals, doubling embedded single quotes. It runs before
// field-reference conversion so field quotes are never touched.
func singleQuoteStrings(s string) string {
	return doubleQuotedPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := strings.ReplaceAll(m[1:len(m)-1], singleQuoteEscapeSrc, singleQuoteEscapeDst)

		return "'" + inner + "'"
	})
}

// quoteFieldRefs converts bracketed field references ([Name]) to the target
// quoted-identifier form ("Name").
func quoteFieldRefs(s string) string {
	return fieldRefPattern.ReplaceAllString(s, `"$1"`)
}

// normalizeOperators rewrites source operators to target operators outside
// quoted literals: & becomes ||, <> becomes !=, and the word operators
// And/Or/Not become AND/OR/NOT with single surrounding spaces.
func normalizeOperators(s string) string {
	return applyOutsideQuotes(s, func(seg string) string {
		seg = concatPattern.ReplaceAllString(seg, concatOperator)
		seg = strings.ReplaceAll(seg, "<>", inequalityTarget)
		seg = andWordPattern.ReplaceAllString(seg, " AND ")
		seg = orWordPattern.ReplaceAllString(seg, " OR ")
		seg = notWordPattern.ReplaceAllString(seg, " NOT ")

		return seg
	})
}

// substituteIdentifier replaces whole-word occurrences of name outside quoted
// literals with replacement, skipping occurrences already carrying the bound
// reference marker (@name).
func substituteIdentifier(s, name, replacement string) string {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)

	return applyOutsideQuotes(s, func(seg string) string {
		var out strings.Builder

		prev := 0

		for _, loc := range pattern.FindAllStringIndex(seg, -1) {
			if loc[0] > 0 && seg[loc[0]-1] == '@' {
				continue
			}

			out.WriteString(seg[prev:loc[0]])
			out.WriteString(replacement)

			prev = loc[1]
		}

		out.WriteString(seg[prev:])

		return out.String()
	})
}

// normalizeExpr rewrites one expression fragment (no control-flow keywords)
// from source to target syntax, excluding scope-variable substitution.
func normalizeExpr(s string) string {
	s = decodeEntities(s)
	s = singleQuoteStrings(s)
	s = quoteFieldRefs(s)
	s = normalizeOperators(s)

	return strings.TrimSpace(s)
}

// NormalizeFragment rewrites a standalone one-line expression fragment to
// target syntax. In addition to the standard rewrite it treats + as a
// concatenation operator and maps a lone escaped double quote to a
// single-quote character literal, so a literal of exactly one quote
// round-trips without breaking target quoting.
func NormalizeFragment(s string) string {
	s = decodeEntities(s)
	s = strings.ReplaceAll(s, escapedDoubleQuote, "'")
	s = doubleQuotedPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[1 : len(m)-1]
		if inner == "'" {
			return loneSingleQuoteLit
		}

		return "'" + strings.ReplaceAll(inner, singleQuoteEscapeSrc, singleQuoteEscapeDst) + "'"
	})
	s = quoteFieldRefs(s)
	s = applyOutsideQuotes(s, func(seg string) string {
		seg = concatPattern.ReplaceAllString(seg, concatOperator)
		seg = plusPattern.ReplaceAllString(seg, concatOperator)
		seg = strings.ReplaceAll(seg, "<>", inequalityTarget)
		seg = andWordPattern.ReplaceAllString(seg, " AND ")
		seg = orWordPattern.ReplaceAllString(seg, " OR ")
		seg = notWordPattern.ReplaceAllString(seg, " NOT ")

		return seg
	})

	return strings.TrimSpace(s)
}

// StripFieldName reduces a bare field token to its trailing identifier:
// bracket delimiters are removed and a table.field qualifier keeps only the
// field part.
func StripFieldName(s string) string {
	s = strings.ReplaceAll(s, "[", "")
	s = strings.ReplaceAll(s, "]", "")

	if idx := strings.LastIndex(s, "."); idx >= 0 {
		s = s[idx+1:]
	}

	return strings.TrimSpace(s)
}
