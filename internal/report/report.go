// Package report prints validation results and fix previews.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"envcheck/internal/constants"
	"envcheck/internal/validate"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

// Format names an output format accepted by Write.
type Format string

const (
	FormatText Format = constants.OutputText
	FormatJSON Format = constants.OutputJSON
	FormatYAML Format = constants.OutputYAML
)

// Formats lists the accepted output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
}

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

// Document is the machine-readable form of a result.
type Document struct {
	File     string             `json:"file" yaml:"file"`
	Example  string             `json:"example" yaml:"example"`
	Valid    bool               `json:"valid" yaml:"valid"`
	Errors   []validate.Finding `json:"errors" yaml:"errors"`
	Warnings []validate.Finding `json:"warnings" yaml:"warnings"`
}

// NewDocument wraps a result. Empty finding lists are kept as empty lists.
func NewDocument(file, example string, res validate.Result) Document {
	doc := Document{
		File:     file,
		Example:  example,
		Valid:    res.IsValid(),
		Errors:   res.Errors,
		Warnings: res.Warnings,
	}
	if doc.Errors == nil {
		doc.Errors = []validate.Finding{}
	}
	if doc.Warnings == nil {
		doc.Warnings = []validate.Finding{}
	}
	return doc
}

// Write prints a result in the given format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		return JSON(w, doc)
	case FormatYAML:
		return YAML(w, doc)
	default:
		return Text(w, doc)
	}
}

// Text prints every error, then every warning, then the verdict.
func Text(w io.Writer, doc Document) error {
	if len(doc.Errors) > 0 {
		if _, err := lipgloss.Fprintln(w, headingStyle.Render("Errors found:")); err != nil {
			return err
		}
		for _, f := range doc.Errors {
			if _, err := lipgloss.Fprintln(w, errorStyle.Render("  ✗ "+f.Message)); err != nil {
				return err
			}
		}
	}
	if len(doc.Warnings) > 0 {
		if _, err := lipgloss.Fprintln(w, headingStyle.Render("Warnings:")); err != nil {
			return err
		}
		for _, f := range doc.Warnings {
			if _, err := lipgloss.Fprintln(w, warnStyle.Render("  ⚠ "+f.Message)); err != nil {
				return err
			}
		}
	}
	if doc.Valid {
		_, err := lipgloss.Fprintln(w, okStyle.Render("✓ All environment variables are valid!"))
		return err
	}
	return nil
}

// JSON prints the document as indented JSON.
func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// YAML prints the document as YAML.
func YAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
