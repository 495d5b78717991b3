// Package label converts label definitions between expression dialects. It
// sits between document readers (lyrx, manifests) and the per-dialect
// translators: each definition names its source engine, and conversion
// dispatches on that engine. Batch conversion isolates failures per
// definition.
package label

import (
	"errors"
	"fmt"

	"github.com/terramap/labelconv/pkg/lyrx"
	"github.com/terramap/labelconv/pkg/vbscript"
)

// ErrUnsupportedEngine indicates a definition names an expression engine
// with no translator.
var ErrUnsupportedEngine = errors.New("unsupported expression engine")

// Definition is one label definition to convert.
type Definition struct {
	// Name identifies the definition in reports. Optional.
	Name string

	// Expression is the source label expression.
	Expression string

	// Engine names the source dialect. Empty means VBScript, the ArcMap
	// default.
	Engine string

	// Expected is the golden expression for verification runs. Optional.
	Expected string
}

// Result is the outcome of converting one definition.
type Result struct {
	// Definition is the input that produced this result.
	Definition Definition

	// Expression is the converted expression. Empty when Err is set.
	Expression string

	// IsExpression distinguishes a full expression from a bare field name.
	IsExpression bool

	// Err is the per-definition failure, nil on success.
	Err error
}

// Convert translates one definition. Unknown engines fail with
// ErrUnsupportedEngine; translation failures carry the translator's error.
func Convert(def Definition) Result {
	switch def.Engine {
	case "", lyrx.EngineVBScript:
		translation, err := vbscript.Translate(def.Expression)
		if err != nil {
			return Result{Definition: def, Err: err}
		}

		return Result{
			Definition:   def,
			Expression:   translation.Expression,
			IsExpression: translation.IsExpression,
		}

	default:
		return Result{
			Definition: def,
			Err:        fmt.Errorf("%w: %s", ErrUnsupportedEngine, def.Engine),
		}
	}
}

// ConvertAll converts every definition in order. One failure never aborts
// the batch; each result carries its own error.
func ConvertAll(defs []Definition) []Result {
	results := make([]Result, len(defs))

	for i, def := range defs {
		results[i] = Convert(def)
	}

	return results
}

// FromClasses builds definitions from flattened .lyrx label classes. The
// definition name joins the layer and class names.
func FromClasses(refs []lyrx.ClassRef) []Definition {
	defs := make([]Definition, len(refs))

	for i, ref := range refs {
		name := ref.Class.Name
		if ref.Layer != "" {
			name = ref.Layer + "/" + ref.Class.Name
		}

		defs[i] = Definition{
			Name:       name,
			Expression: ref.Class.Expression,
			Engine:     ref.Class.ExpressionEngine,
		}
	}

	return defs
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	failed := 0

	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	return failed
}
