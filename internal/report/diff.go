package report

import (
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	addStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	delStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// DiffLines returns a unified-style line listing of the change from before
// to after: "+" for added lines, "-" for removed lines, " " for context.
// It returns nil when the texts are equal.
func DiffLines(before, after string) []string {
	if before == after {
		return nil
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []string
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, prefix+strings.TrimSuffix(line, "\n"))
		}
	}
	return out
}

// Diff prints the change a fix would make to path.
func Diff(w io.Writer, path, before, after string) error {
	lines := DiffLines(before, after)
	if lines == nil {
		_, err := lipgloss.Fprintln(w, okStyle.Render("No changes to "+path))
		return err
	}
	if _, err := lipgloss.Fprintln(w, headingStyle.Render("--- "+path)); err != nil {
		return err
	}
	if _, err := lipgloss.Fprintln(w, headingStyle.Render("+++ "+path+" (fixed)")); err != nil {
		return err
	}
	for _, line := range lines {
		style := lipgloss.NewStyle()
		switch line[0] {
		case '+':
			style = addStyle
		case '-':
			style = delStyle
		}
		if _, err := lipgloss.Fprintln(w, style.Render(line)); err != nil {
			return err
		}
	}
	return nil
}
