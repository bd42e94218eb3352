package validate

import (
	"errors"
	"io"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Rule is a single declarative field constraint. Check receives the decoded
// record and may normalize it in place (e.g. trim and lower-case a list of
// tags) before or instead of rejecting it. Field is the JSON name reported in
// diagnostics when Check fails.
type Rule[T any] struct {
	Field string
	Check func(record *T) error
}

// Validator is the strict parse-and-validate step: it decodes raw text under
// strict JSON syntax and then applies its rules in declaration order, failing
// on the first violation.
//
// A Validator performs no repair and has no side effects; it is safe for
// concurrent use.
type Validator[T any] struct {
	rules []Rule[T]
}

// New creates a Validator with the given field rules. Rules are evaluated in
// the order they are passed.
func New[T any](rules ...Rule[T]) *Validator[T] {
	return &Validator[T]{rules: rules}
}

// Parse attempts to interpret content strictly as a serialized T.
//
// It returns:
//   - *MalformedInputError when content is not a single well-formed JSON
//     value (wrong quoting, unquoted keys, trailing commas, surrounding
//     prose, non-standard literals);
//   - *ValidationError naming the offending field when content is well-formed
//     but a field has the wrong JSON type or violates one of the rules;
//   - the decoded, normalized record otherwise.
//
// No partially validated record is ever returned.
func (v *Validator[T]) Parse(content string) (*T, error) {
	record := new(T)

	dec := json.NewDecoder(strings.NewReader(content))
	if err := dec.Decode(record); err != nil {
		return nil, classifyDecodeError[T](content, err)
	}

	// The input must be exactly one JSON value. Anything after it (prose,
	// a second document) fails the strict contract.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &MalformedInputError{Err: errors.New("unexpected trailing data after JSON value")}
	}

	for _, rule := range v.rules {
		if err := rule.Check(record); err != nil {
			return nil, &ValidationError{Field: rule.Field, Err: err}
		}
	}

	return record, nil
}

// classifyDecodeError maps decoder failures onto the error taxonomy. When
// the text is well-formed JSON, a decode failure means a field carried the
// wrong JSON type, so it is reported as a validation failure naming that
// field; everything else is malformed input.
//
// The decoder itself does not reliably surface which field mismatched, so
// the field is recovered by re-probing the document field by field.
func classifyDecodeError[T any](content string, err error) error {
	if !gjson.Valid(content) {
		return &MalformedInputError{Err: err}
	}
	if field, ok := mismatchedField[T](content); ok {
		return &ValidationError{Field: field, Err: err}
	}
	// Well-formed JSON that is not an object of T's shape at all (e.g. a
	// top-level array or scalar) is not serialized data for the record.
	return &MalformedInputError{Err: err}
}

// mismatchedField decodes content as a raw JSON object and retries each of
// T's fields individually, returning the JSON name of the first field whose
// value does not decode into its declared type.
func mismatchedField[T any](content string) (string, bool) {
	var fields map[string]json.RawMessage
	if json.Unmarshal([]byte(content), &fields) != nil {
		return "", false
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", false
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := jsonFieldName(field)
		if name == "" {
			continue
		}
		raw, present := fields[name]
		if !present {
			continue
		}
		dst := reflect.New(field.Type).Interface()
		if json.Unmarshal(raw, dst) != nil {
			return name, true
		}
	}
	return "", false
}

// jsonFieldName resolves a struct field's JSON name, returning "" for fields
// excluded from serialization.
func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if tag == "" {
		return field.Name
	}
	if commaIdx := strings.Index(tag, ","); commaIdx != -1 {
		if commaIdx == 0 {
			return field.Name
		}
		return tag[:commaIdx]
	}
	return tag
}
