package testutils

import (
	"fmt"
	"strings"
	"testing"
	"text/tabwriter"
)

// TestCase is one row of a comparison table.
type TestCase struct {
	Name     string
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

// Case builds a row, marking it passed when expected and actual match.
func Case(name, input, expected, actual string) TestCase {
	return TestCase{Name: name, Input: input, Expected: expected, Actual: actual, Pass: expected == actual}
}

// PrintTestTable logs a table of input, expected and returned values, with
// failing rows marked by > <, and fails the test if any row failed.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Name\tInput\tExpected Value\tReturned Value\t\n")

	var failed []string
	for _, tc := range cases {
		left, right := " ", " "
		if !tc.Pass {
			left, right = ">", "<"
			failed = append(failed, tc.Name)
		}
		fmt.Fprintf(w, "%s %s\t%q\t%s\t%s\t%s\n", left, tc.Name, tc.Input, tc.Expected, tc.Actual, right)
	}
	w.Flush()
	t.Log("\n" + b.String())

	if len(failed) > 0 {
		t.Errorf("%d of %d cases failed: %s", len(failed), len(cases), strings.Join(failed, ", "))
	}
}
