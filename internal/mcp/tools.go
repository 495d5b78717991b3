package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/terramap/labelconv/pkg/label"
	"github.com/terramap/labelconv/pkg/lyrx"
)

// Tool name constants.
const (
	ToolNameConvert = "label_convert"
	ToolNameLyrx    = "lyrx_convert"
)

// Input size limits.
const (
	// MaxExpressionBytes is the maximum allowed size for an inline
	// expression (256 KB).
	MaxExpressionBytes = 1 << 18

	// MaxDocumentBytes is the maximum allowed size for an inline .lyrx
	// document (4 MB).
	MaxDocumentBytes = 1 << 22
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyExpression indicates the expression parameter is empty.
	ErrEmptyExpression = errors.New("expression parameter is required and must not be empty")
	// ErrExpressionTooLarge indicates the expression exceeds the size limit.
	ErrExpressionTooLarge = errors.New("expression exceeds maximum size")
	// ErrEmptyDocument indicates the document parameter is empty.
	ErrEmptyDocument = errors.New("document parameter is required and must not be empty")
	// ErrDocumentTooLarge indicates the document exceeds the size limit.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")
)

// Input types (auto-generate JSON schemas via struct tags).

// ConvertInput is the input schema for the label_convert tool.
type ConvertInput struct {
	Engine     string `json:"engine,omitempty" jsonschema:"source expression engine (default: VBScript)"`
	Expression string `json:"expression"       jsonschema:"ArcGIS label expression to convert"`
}

// LyrxConvertInput is the input schema for the lyrx_convert tool.
type LyrxConvertInput struct {
	Document      string `json:"document"                 jsonschema:"contents of a .lyrx layer file (CIM JSON)"`
	IncludeHidden bool   `json:"include_hidden,omitempty" jsonschema:"include label classes with visibility off"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// ConvertOutput is the per-definition conversion payload.
type ConvertOutput struct {
	Name         string `json:"name,omitempty"`
	Expression   string `json:"expression"`
	IsExpression bool   `json:"is_expression"`
	Error        string `json:"error,omitempty"`
}

func handleConvert(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input ConvertInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	validateErr := validateExpressionInput(input.Expression)
	if validateErr != nil {
		return errorResult(validateErr)
	}

	res := label.Convert(label.Definition{
		Expression: input.Expression,
		Engine:     input.Engine,
	})
	if res.Err != nil {
		return errorResult(res.Err)
	}

	return jsonResult(ConvertOutput{
		Expression:   res.Expression,
		IsExpression: res.IsExpression,
	})
}

func handleLyrxConvert(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input LyrxConvertInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	validateErr := validateDocumentInput(input.Document)
	if validateErr != nil {
		return errorResult(validateErr)
	}

	doc, parseErr := lyrx.Parse([]byte(input.Document))
	if parseErr != nil {
		return errorResult(parseErr)
	}

	refs := doc.LabelClasses()
	if !input.IncludeHidden {
		refs = visibleOnly(refs)
	}

	results := label.ConvertAll(label.FromClasses(refs))

	outputs := make([]ConvertOutput, len(results))
	for i, res := range results {
		outputs[i] = ConvertOutput{
			Name:         res.Definition.Name,
			Expression:   res.Expression,
			IsExpression: res.IsExpression,
		}

		if res.Err != nil {
			outputs[i].Error = res.Err.Error()
		}
	}

	return jsonResult(outputs)
}

func visibleOnly(refs []lyrx.ClassRef) []lyrx.ClassRef {
	var visible []lyrx.ClassRef

	for _, ref := range refs {
		if ref.Class.Visibility {
			visible = append(visible, ref)
		}
	}

	return visible
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateExpressionInput checks expression input constraints.
func validateExpressionInput(expression string) error {
	if expression == "" {
		return ErrEmptyExpression
	}

	if len(expression) > MaxExpressionBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrExpressionTooLarge, len(expression), MaxExpressionBytes)
	}

	return nil
}

// validateDocumentInput checks document input constraints.
func validateDocumentInput(document string) error {
	if document == "" {
		return ErrEmptyDocument
	}

	if len(document) > MaxDocumentBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(document), MaxDocumentBytes)
	}

	return nil
}
