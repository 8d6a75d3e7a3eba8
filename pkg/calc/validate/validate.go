// Package validate rejects calculator input before any formula runs.
//
// Range and enum rules live in `validate:` struct tags and are checked with
// go-playground/validator. Rules that span several fields are added by each
// calculator with ValidationError.Add. Errors are keyed by the field's JSON
// name so the HTTP layer and CLI can point at the offending field.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		instance = v
	})
	return instance
}

// ValidationError is a field-keyed input rejection.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Add records a problem with field. The first message for a field wins.
func (e *ValidationError) Add(field, format string, a ...any) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = fmt.Sprintf(format, a...)
}

// Has reports whether field already failed. Cross-field rules use it to avoid
// comparing values that are themselves out of range.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// Empty reports whether no problems were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e as an error, or nil when nothing was recorded.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Check validates the struct tags of s and records failures under prefix,
// e.g. prefix "measurements" turns field "neck" into "measurements.neck".
func (e *ValidationError) Check(prefix string, s any) {
	err := engine().Struct(s)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: s is not a struct. That is a caller bug.
		panic(err)
	}

	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		if prefix != "" {
			field = prefix + "." + field
		}
		e.Add(field, "%s", message(fe))
	}
}

// Struct validates the struct tags of s and returns the collected problems,
// which the caller may extend before calling OrNil.
func Struct(s any) *ValidationError {
	e := &ValidationError{}
	e.Check("", s)
	return e
}

// As extracts a *ValidationError from err.
func As(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
