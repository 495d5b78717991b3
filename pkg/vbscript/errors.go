package vbscript

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two fatal failure classes. Both abort translation
// of the offending definition only; callers translating a batch report the
// failure per definition and keep going.
var (
	// ErrStructural indicates a malformed program: an unterminated block,
	// a missing initial assignment, or an assignment to a variable other
	// than the target inside a block body.
	ErrStructural = errors.New("structural error")

	// ErrUnsupported indicates a construct outside the supported grammar,
	// such as a loop, a subroutine call, or array indexing.
	ErrUnsupported = errors.New("unsupported construct")
)

// structuralErr builds an ErrStructural with the offending line attached.
func structuralErr(msg string, line Line) error {
	return fmt.Errorf("%w: %s (line %d: %q)", ErrStructural, msg, line.Num, strings.TrimSpace(line.Raw))
}

// unsupportedErr builds an ErrUnsupported with the offending line attached.
func unsupportedErr(line Line) error {
	return fmt.Errorf("%w (line %d: %q)", ErrUnsupported, line.Num, strings.TrimSpace(line.Raw))
}
