// SPDX-License-Identifier: MIT

package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvgroup/partition"
	"github.com/katalvlaran/lvgroup/rules"
)

// Format is the encoding of an input document.
type Format int

const (
	// FormatJSON is encoding/json.
	FormatJSON Format = iota
	// FormatYAML is YAML 1.2 via gopkg.in/yaml.v3.
	FormatYAML
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath maps a file extension (.json, .yaml, .yml) to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Document is one matching input.
//   - Fields maps field ids to display labels. When present, every rule
//     field must be declared here.
//   - Elements maps element ids to their field values.
//   - Rules are applied in order.
//   - Outputs is the output-size quota (size -> max count, negative = unlimited).
type Document struct {
	Fields   map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Elements rules.Attributes  `json:"elements" yaml:"elements" validate:"required,min=1"`
	Rules    []rules.Rule      `json:"rules" yaml:"rules" validate:"omitempty,dive"`
	Outputs  partition.Quota   `json:"outputs" yaml:"outputs" validate:"required,min=1"`
}

var docValidate = validator.New()

// Validate checks the document structure. Element and field references
// inside rules are resolved later, while the matrix is built.
//
// Errors: ErrInvalidDocument wrapping the first problem found.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	if err := docValidate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for i, r := range d.Rules {
		if !r.Severity.Valid() {
			return fmt.Errorf("%w: rule %d: %w", ErrInvalidDocument, i, rules.ErrUnknownSeverity)
		}
		if !r.Operand.Valid() {
			return fmt.Errorf("%w: rule %d: %w", ErrInvalidDocument, i, rules.ErrUnknownOperand)
		}
		if len(d.Fields) == 0 {
			continue
		}
		for _, f := range []string{r.Field, r.TargetField} {
			if _, ok := d.Fields[f]; !ok {
				return fmt.Errorf("%w: rule %d: undeclared field %q", ErrInvalidDocument, i, f)
			}
		}
	}
	if err := partition.ValidateQuota(d.Outputs); err != nil {
		return fmt.Errorf("%w: outputs: %w", ErrInvalidDocument, err)
	}

	return nil
}

// Label returns the display label of field, or field itself when undeclared.
func (d *Document) Label(field string) string {
	if l, ok := d.Fields[field]; ok && l != "" {
		return l
	}

	return field
}

// Decode parses a document from r. It does not validate it.
//
// Errors: ErrDecode wrapping the parser error, ErrUnknownFormat.
func Decode(r io.Reader, f Format) (*Document, error) {
	var doc Document
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrDecode, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: yaml: empty input", ErrDecode)
			}
			return nil, fmt.Errorf("%w: yaml: %w", ErrDecode, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}

	return &doc, nil
}

// LoadFile reads, decodes and validates the document at path. The format is
// chosen by extension.
func LoadFile(path string) (*Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("matching: read %s: %w", path, err)
	}
	doc, err := Decode(bytes.NewReader(raw), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}
