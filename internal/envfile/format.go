package envfile

import (
	"strings"
)

// UserDefinedHeading introduces variables that the template does not list.
const UserDefinedHeading = "User Defined"

// Format renders records as file text.
//
// Without a template every distinct key is written once as KEY=VALUE, in
// order of first occurrence, using the value of its last occurrence.
//
// With a template the template's lines are walked in order. Comments, blank
// lines and variables without a record pass through unchanged. A variable
// line whose key has a record keeps everything up to the value (indentation,
// key spelling, spacing around '=') and gets the record's value. Records the
// template never mentions are appended under a "User Defined" heading.
// A template written with CRLF line endings produces CRLF output.
func Format(records []Record, template []string) string {
	order, values := collapse(records)

	if template == nil {
		var b strings.Builder
		for _, key := range order {
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(FormatValue(values[key]))
			b.WriteByte('\n')
		}
		return b.String()
	}

	lines := make([]string, 0, len(template)+len(order))
	trailingNewline := false
	body := template
	if n := len(body); n > 0 && body[n-1] == "" {
		body = body[:n-1]
		trailingNewline = true
	}

	cr := usesCR(body)
	used := make(map[string]bool, len(order))
	for _, line := range body {
		key, _, ok := ParseLine(line)
		if !ok {
			lines = append(lines, line)
			continue
		}
		used[key] = true
		value, found := values[key]
		if !found {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, replaceValue(line, value))
	}

	var extra []string
	for _, key := range order {
		if !used[key] {
			extra = append(extra, key+"="+FormatValue(values[key]))
		}
	}
	if len(extra) > 0 {
		var block []string
		if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) != "" {
			block = append(block, "")
		}
		block = append(block, "###", "### "+UserDefinedHeading, "###")
		block = append(block, extra...)
		if cr {
			for i := range block {
				block[i] += "\r"
			}
		}
		lines = append(lines, block...)
		trailingNewline = true
	}

	if trailingNewline {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// collapse returns distinct keys in first-occurrence order and the value of
// each key's last occurrence.
func collapse(records []Record) ([]string, map[string]string) {
	values := make(map[string]string, len(records))
	var order []string
	for _, r := range records {
		if _, seen := values[r.Key]; !seen {
			order = append(order, r.Key)
		}
		values[r.Key] = r.Value
	}
	return order, values
}

// replaceValue swaps the value of a variable line, keeping the text before it
// and its line ending.
func replaceValue(line, value string) string {
	body, cr := strings.CutSuffix(line, "\r")
	eq := strings.IndexByte(body, '=')
	rest := body[eq+1:]
	lead := rest[:len(rest)-len(strings.TrimLeft(rest, " \t"))]
	out := body[:eq+1] + lead + FormatValue(value)
	if cr {
		out += "\r"
	}
	return out
}

// usesCR reports whether the template's lines end with CRLF.
func usesCR(lines []string) bool {
	for _, l := range lines {
		if strings.HasSuffix(l, "\r") {
			return true
		}
	}
	return false
}

// FormatValue quotes a value only when a bare value would not parse back to
// itself, which happens when it begins or ends with a quote character.
func FormatValue(v string) string {
	if v == "" {
		return v
	}
	if isQuote(v[0]) || isQuote(v[len(v)-1]) {
		return `"` + v + `"`
	}
	return v
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}
