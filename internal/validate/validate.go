// Package validate checks environment records against the schema declared
// by an example file and classifies every discrepancy.
package validate

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"

	"envcheck/internal/envfile"
)

// ErrValidationFailed is returned by callers that treat any error finding as fatal.
var ErrValidationFailed = errors.New("environment validation failed")

// Kind classifies a finding.
type Kind string

// Error kinds.
const (
	KindMissing      Kind = "missing"
	KindTypeMismatch Kind = "type_mismatch"
	KindInvalid      Kind = "invalid"
)

// Warning kinds.
const (
	KindExtra      Kind = "extra"
	KindDeprecated Kind = "deprecated"
)

// IsWarning reports whether findings of this kind never affect validity.
func (k Kind) IsWarning() bool {
	return k == KindExtra || k == KindDeprecated
}

// Finding is one discrepancy, tied to a key.
type Finding struct {
	Key     string `json:"key" yaml:"key"`
	Message string `json:"message" yaml:"message"`
	Kind    Kind   `json:"kind" yaml:"kind"`
}

// Result is the classified difference between a live file and its example.
type Result struct {
	Errors   []Finding
	Warnings []Finding
}

// IsValid reports whether there are no error findings. Warnings do not count.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// predicates is the fixed type table; it is never modified after init.
var predicates map[envfile.Type]func(string) bool

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func init() {
	predicates = make(map[envfile.Type]func(string) bool, len(envfile.Types()))
	for _, t := range envfile.Types() {
		predicates[t] = predicateFor(t)
	}
}

func predicateFor(t envfile.Type) func(string) bool {
	switch t {
	case envfile.TypeString:
		return func(string) bool { return true }
	case envfile.TypeNumber:
		return IsNumber
	case envfile.TypeBoolean:
		return IsBoolean
	case envfile.TypeURL:
		return IsURL
	case envfile.TypeEmail:
		return IsEmail
	case envfile.TypeNone:
		return nil
	}
	panic(fmt.Sprintf("validate: no predicate for %v", t))
}

// IsNumber reports whether v is a finite numeric literal.
func IsNumber(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// IsBoolean accepts exactly "true" and "false".
func IsBoolean(v string) bool {
	return v == "true" || v == "false"
}

// IsURL reports whether v is an absolute URL.
func IsURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// IsEmail reports whether v has the local@domain.tld shape.
func IsEmail(v string) bool {
	return emailRe.MatchString(v)
}

// Conforms reports whether value satisfies type t. Any value satisfies TypeNone.
func Conforms(t envfile.Type, value string) bool {
	pred, ok := predicates[t]
	if !ok || pred == nil {
		return true
	}
	return pred(value)
}

// Check validates a single record. The missing check runs first, so an
// empty required value never also reports a type mismatch.
func Check(r envfile.Record) *Finding {
	if r.Required && r.Value == "" {
		return &Finding{
			Key:     r.Key,
			Message: fmt.Sprintf("Required environment variable %s is missing", r.Key),
			Kind:    KindMissing,
		}
	}
	if r.Type != envfile.TypeNone && r.Value != "" && !Conforms(r.Type, r.Value) {
		return &Finding{
			Key:     r.Key,
			Message: fmt.Sprintf("Environment variable %s must be of type %s", r.Key, r.Type),
			Kind:    KindTypeMismatch,
		}
	}
	return nil
}

// Compare checks live records against example records without modifying either.
//
// Each example key absent from live is a missing error when required and
// nothing otherwise. A present key has its live value checked against the
// example's required flag and type. Each live key the example lacks yields
// one extra warning. Errors follow example order; warnings follow live order.
func Compare(live, example []envfile.Record) Result {
	var res Result

	liveValues := make(map[string]string, len(live))
	var liveOrder []string
	for _, r := range live {
		if _, seen := liveValues[r.Key]; !seen {
			liveOrder = append(liveOrder, r.Key)
		}
		liveValues[r.Key] = r.Value
	}

	// A key declared twice in the example uses its last declaration.
	schema := make(map[string]envfile.Record, len(example))
	var exampleOrder []string
	for _, ex := range example {
		if _, seen := schema[ex.Key]; !seen {
			exampleOrder = append(exampleOrder, ex.Key)
		}
		schema[ex.Key] = ex
	}

	for _, key := range exampleOrder {
		ex := schema[key]
		value, present := liveValues[ex.Key]
		if !present {
			if ex.Required {
				res.Errors = append(res.Errors, Finding{
					Key:     ex.Key,
					Message: fmt.Sprintf("Required environment variable %s is missing", ex.Key),
					Kind:    KindMissing,
				})
			}
			continue
		}
		candidate := envfile.Record{Key: ex.Key, Value: value, Required: ex.Required, Type: ex.Type}
		if f := Check(candidate); f != nil {
			res.Errors = append(res.Errors, *f)
		}
	}

	for _, key := range liveOrder {
		if _, declared := schema[key]; !declared {
			res.Warnings = append(res.Warnings, Finding{
				Key:     key,
				Message: fmt.Sprintf("Extra environment variable %s found", key),
				Kind:    KindExtra,
			})
		}
	}
	return res
}
