package envfile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SchemaOptions controls how an example file's metadata is derived.
type SchemaOptions struct {
	// InferTypes gives variables without an @type directive a type guessed
	// from their example value (true/false, numbers, http(s) URLs).
	InferTypes bool
}

// Parse converts file text into a File. Every record is required; live files
// carry no authoritative metadata. The original lines are retained.
func Parse(path, text string) *File {
	lines := SplitLines(text)
	f := &File{Path: path, Lines: lines}
	for _, line := range lines {
		key, value, ok := ParseLine(line)
		if !ok {
			continue
		}
		f.Records = append(f.Records, Record{Key: key, Value: value, Required: true})
	}
	return f
}

// ParseExample parses an example file and applies the directive comments
// that document each variable.
func ParseExample(path, text string, opts SchemaOptions) (*File, error) {
	lines := SplitLines(text)
	f := &File{Path: path, Lines: lines}

	var pending directives
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pending = directives{}
			continue
		case strings.HasPrefix(trimmed, "#"):
			if err := pending.apply(trimmed); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
			}
			continue
		}

		key, value, ok := ParseLine(line)
		if !ok {
			pending = directives{}
			continue
		}
		rec := Record{
			Key:         key,
			Value:       value,
			Required:    !pending.optional,
			Type:        pending.typ,
			Description: pending.description,
		}
		if rec.Type == TypeNone && opts.InferTypes {
			rec.Type = InferType(value)
		}
		f.Records = append(f.Records, rec)
		pending = directives{}
	}
	return f, nil
}

// directives accumulates the @-annotations of one comment block.
type directives struct {
	typ         Type
	optional    bool
	description string
}

func (d *directives) apply(comment string) error {
	body := strings.TrimSpace(strings.TrimLeft(comment, "#"))
	if !strings.HasPrefix(body, "@") {
		return nil
	}
	name, arg, _ := strings.Cut(body[1:], " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "type":
		t, err := ParseType(arg)
		if err != nil {
			return err
		}
		d.typ = t
	case "required":
		d.optional = false
	case "optional":
		d.optional = true
	case "description":
		d.description = arg
	}
	// Unknown directives are ordinary comments.
	return nil
}

// InferType guesses a type from an example value, the way a reader of the
// example file would: true/false, numbers and http(s) URLs.
func InferType(value string) Type {
	switch {
	case value == "":
		return TypeNone
	case value == "true" || value == "false":
		return TypeBoolean
	case isFiniteNumber(value):
		return TypeNumber
	case strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://"):
		return TypeURL
	}
	return TypeNone
}

func isFiniteNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// SplitLines splits text on '\n'. A '\r' before the newline stays on its
// line; ParseLine ignores it. A trailing newline yields a final empty
// element, so joining the result with "\n" reproduces the text.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// ParseLine extracts the key and value of a variable line.
// ok is false for blank lines, comments, lines without '=' and empty keys.
func ParseLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	k, v, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(k)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(unquote(strings.TrimSpace(v))), true
}

// unquote removes one matched pair of surrounding single or double quotes.
func unquote(v string) string {
	if len(v) >= 2 {
		q := v[0]
		if (q == '"' || q == '\'') && v[len(v)-1] == q {
			return v[1 : len(v)-1]
		}
	}
	return v
}
