// Package lyrx reads ArcGIS Pro layer files (.lyrx). A layer file is a CIM
// JSON document; this package models the slice of it that labeling cares
// about: layer definitions and their label classes, each carrying a label
// expression and the engine it is written for.
package lyrx

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Expression engine identifiers as they appear in CIM documents.
const (
	// EngineVBScript marks a VBScript label expression.
	EngineVBScript = "VBScript"

	// EngineArcade marks an Arcade label expression.
	EngineArcade = "Arcade"

	// EnginePython marks a Python label expression.
	EnginePython = "Python"
)

// Sentinel errors for document-level failures.
var (
	// ErrInvalidDocument indicates the input is not a CIM JSON document.
	ErrInvalidDocument = errors.New("invalid layer document")

	// ErrNoLayerDefinitions indicates the document carries no layer
	// definitions.
	ErrNoLayerDefinitions = errors.New("document has no layer definitions")
)

// Document is the label-relevant slice of a .lyrx CIM document.
type Document struct {
	Layers           []string          `json:"layers"`
	LayerDefinitions []LayerDefinition `json:"layerDefinitions"`
}

// LayerDefinition is one layer inside a .lyrx document.
type LayerDefinition struct {
	Name            string       `json:"name"`
	Type            string       `json:"type"`
	LabelVisibility bool         `json:"labelVisibility"`
	LabelClasses    []LabelClass `json:"labelClasses"`
}

// LabelClass is one label class of a layer: the expression, the engine it is
// written for, and whether the class is switched on.
type LabelClass struct {
	Name             string  `json:"name"`
	Expression       string  `json:"expression"`
	ExpressionEngine string  `json:"expressionEngine"`
	Visibility       bool    `json:"visibility"`
	MinimumScale     float64 `json:"minimumScale"`
	MaximumScale     float64 `json:"maximumScale"`
}

// ClassRef identifies one label class within its document: the layer it
// belongs to plus the class itself.
type ClassRef struct {
	Layer string
	Class LabelClass
}

// Parse decodes a .lyrx document from raw bytes. A document without layer
// definitions is rejected; per-class problems are left to the caller.
func Parse(data []byte) (*Document, error) {
	var doc Document

	err := json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if len(doc.LayerDefinitions) == 0 {
		return nil, ErrNoLayerDefinitions
	}

	return &doc, nil
}

// LabelClasses flattens the document into one entry per label class,
// preserving document order. Invisible classes are included; filtering is the
// caller's decision.
func (d *Document) LabelClasses() []ClassRef {
	var refs []ClassRef

	for _, layer := range d.LayerDefinitions {
		for _, class := range layer.LabelClasses {
			refs = append(refs, ClassRef{Layer: layer.Name, Class: class})
		}
	}

	return refs
}
