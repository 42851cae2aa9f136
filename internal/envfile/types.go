package envfile

import (
	"fmt"
	"strings"
)

// Type is the primitive type declared for a variable.
// The zero value means no type constraint.
type Type uint8

const (
	TypeNone Type = iota
	TypeString
	TypeNumber
	TypeBoolean
	TypeURL
	TypeEmail
)

var typeNames = [...]string{
	TypeNone:    "",
	TypeString:  "string",
	TypeNumber:  "number",
	TypeBoolean: "boolean",
	TypeURL:     "url",
	TypeEmail:   "email",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Types lists every declarable type, in declaration order.
func Types() []Type {
	return []Type{TypeString, TypeNumber, TypeBoolean, TypeURL, TypeEmail}
}

// ParseType converts a type name (case-insensitive) into a Type.
// An empty name yields TypeNone.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return TypeNone, nil
	}
	for _, t := range Types() {
		if typeNames[t] == name {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown type %q (want one of string, number, boolean, url, email)", name)
}

// Record is one variable: its key, current value and schema metadata.
type Record struct {
	Key         string
	Value       string
	Required    bool
	Type        Type
	Description string // empty when the example gives none
}

// File is the parsed form of an environment file.
type File struct {
	Path    string
	Records []Record
	// Lines holds the original text lines, comments and blanks included.
	// It is nil when the file was not produced by a parse.
	Lines []string
}

// Lookup returns the record for key. With duplicate keys the last one wins.
func (f *File) Lookup(key string) (Record, bool) {
	for i := len(f.Records) - 1; i >= 0; i-- {
		if f.Records[i].Key == key {
			return f.Records[i], true
		}
	}
	return Record{}, false
}

// Keys returns each distinct key once, in order of first occurrence.
func (f *File) Keys() []string {
	seen := make(map[string]bool, len(f.Records))
	var keys []string
	for _, r := range f.Records {
		if !seen[r.Key] {
			seen[r.Key] = true
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// SetValue assigns value to every record using key and reports whether one existed.
func (f *File) SetValue(key, value string) bool {
	found := false
	for i := range f.Records {
		if f.Records[i].Key == key {
			f.Records[i].Value = value
			found = true
		}
	}
	return found
}
