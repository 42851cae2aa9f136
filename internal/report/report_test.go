package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"envcheck/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sample = validate.Result{
	Errors: []validate.Finding{
		{Key: "DB_NAME", Message: "Required environment variable DB_NAME is missing", Kind: validate.KindMissing},
	},
	Warnings: []validate.Finding{
		{Key: "EXTRA", Message: "Extra environment variable EXTRA found", Kind: validate.KindExtra},
	},
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, NewDocument(".env", ".env.example", sample)))

	want := "Errors found:\n" +
		"  ✗ Required environment variable DB_NAME is missing\n" +
		"Warnings:\n" +
		"  ⚠ Extra environment variable EXTRA found\n"
	assert.Equal(t, want, buf.String())
}

func TestTextValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, NewDocument(".env", ".env.example", validate.Result{})))
	assert.Equal(t, "✓ All environment variables are valid!\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, NewDocument(".env", ".env.example", validate.Result{})))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, true, got["valid"])
	assert.Equal(t, []any{}, got["errors"])
	assert.Equal(t, ".env", got["file"])
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, NewDocument(".env", ".env.example", sample)))

	var got Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.False(t, got.Valid)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, validate.KindMissing, got.Errors[0].Kind)
	assert.Equal(t, "EXTRA", got.Warnings[0].Key)
}

func TestDiffLines(t *testing.T) {
	before := "A=1\nB=2\nC=3\n"
	after := "A=1\nB=20\nC=3\nD=\n"

	assert.Equal(t, []string{" A=1", "-B=2", "+B=20", " C=3", "+D="}, DiffLines(before, after))
	assert.Nil(t, DiffLines(before, before))
}

func TestDiff(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Diff(&buf, ".env", "A=1\n", "A=2\n"))
	assert.Equal(t, "--- .env\n+++ .env (fixed)\n-A=1\n+A=2\n", buf.String())

	buf.Reset()
	require.NoError(t, Diff(&buf, ".env", "A=1\n", "A=1\n"))
	assert.Equal(t, "No changes to .env\n", buf.String())
}
