// Package envfile reads, writes and merges flat KEY=VALUE environment files.
//
// A live file (.env) holds current values. An example file (.env.example)
// documents which keys exist and carries their metadata: whether a key is
// required, its primitive type and a description for prompts.
//
// Parsing rules:
//
//   - Blank lines and lines starting with '#' are kept verbatim and produce no record
//   - A variable line is split on its first '='; the key is trimmed
//   - One matched pair of single or double quotes around the value is removed
//   - Lines without '=' or with an empty key are kept verbatim and produce no record
//
// Formatting against a template walks the template's lines, so the written
// file keeps the template's comments, ordering and blank-line grouping while
// its values come from the records.
//
// Example files may annotate a variable with directive comments placed
// directly above it:
//
//	# @type number
//	# @optional
//	# @description Port the API listens on
//	API_PORT=3000
package envfile
