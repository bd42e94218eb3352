package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema represents the subset of JSON Schema used to describe expected
// record structures. It is rendered to JSON and handed to the repair
// capability as context, so it carries field names, types, descriptions and
// validation constraints.
type Schema struct {
	// Type specifies the data type (e.g., "object", "array", "string", "number").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// For array types, the schema of the items in the array.
	Items *Schema `json:"items,omitempty"`
	// Enum contains the list of allowed values.
	Enum []any `json:"enum,omitempty"`
	// Numeric bounds.
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	// MinItems is the minimum number of elements for array types.
	MinItems *int `json:"minItems,omitempty"`
}

// Generate builds a JSON schema for type T by reflection.
//
// Field names come from `json` struct tags (fields tagged "-" are skipped).
// Fields are required unless they are pointers or carry omitempty; the
// `jsonschema` tag can force required explicitly. Supported jsonschema tag
// items:
//
//	description=<text>
//	enum=<value> (repeatable)
//	required
//	minimum=<number>, maximum=<number>, exclusiveMinimum=<number>
//	minItems=<int>
func Generate[T any]() *Schema {
	return generate(reflect.TypeOf((*T)(nil)).Elem())
}

func generate(t reflect.Type) *Schema {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fieldSchema(t)
	}

	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		isOmitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				fieldName = jsonTag[:commaIdx]
				isOmitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				fieldName = jsonTag
			}
		}

		fs := fieldSchema(field.Type)
		isRequiredByTag, err := applySchemaTag(field.Type, field.Tag, fs)
		if err != nil {
			// Keep the field schema as generated; a malformed tag should not
			// abort schema generation for the whole type.
			fs.Description = fmt.Sprintf("(invalid jsonschema tag: %v)", err)
		}

		schema.Properties[fieldName] = fs

		if (field.Type.Kind() != reflect.Ptr && !isOmitEmpty) || isRequiredByTag {
			required = append(required, fieldName)
		}
	}

	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// fieldSchema generates the schema for a single field type.
func fieldSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: fieldSchema(t.Elem())}
	case reflect.Ptr:
		return fieldSchema(t.Elem())
	case reflect.Struct:
		return generate(t)
	default:
		return &Schema{Type: "object"}
	}
}

// applySchemaTag parses the jsonschema struct tag and applies its settings to
// the schema. Returns whether the tag marks the field as required.
func applySchemaTag(fieldType reflect.Type, tag reflect.StructTag, schema *Schema) (bool, error) {
	schemaTag := tag.Get("jsonschema")
	if len(schemaTag) == 0 {
		return false, nil
	}

	isRequiredByTag := false
	for _, item := range strings.Split(schemaTag, ",") {
		kv := strings.SplitN(item, "=", 2)
		if len(kv) == 1 {
			if kv[0] == "required" {
				isRequiredByTag = true
			}
			continue
		}

		key, value := kv[0], kv[1]
		switch key {
		case "description":
			schema.Description = value
		case "enum":
			ev, err := parseEnumValue(fieldType, value)
			if err != nil {
				return isRequiredByTag, err
			}
			schema.Enum = append(schema.Enum, ev)
		case "minimum", "maximum", "exclusiveMinimum":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return isRequiredByTag, fmt.Errorf("parse %s value %q: %w", key, value, err)
			}
			switch key {
			case "minimum":
				schema.Minimum = &v
			case "maximum":
				schema.Maximum = &v
			case "exclusiveMinimum":
				schema.ExclusiveMinimum = &v
			}
		case "minItems":
			v, err := strconv.Atoi(value)
			if err != nil {
				return isRequiredByTag, fmt.Errorf("parse minItems value %q: %w", value, err)
			}
			schema.MinItems = &v
		}
	}

	return isRequiredByTag, nil
}

// parseEnumValue converts a tag enum literal to the field's underlying type.
func parseEnumValue(fieldType reflect.Type, value string) (any, error) {
	if fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q to int64: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q to float64: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q to bool: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type: %v", fieldType)
	}
}

// JSONString converts the schema to its JSON representation. When indent is
// true the output is pretty-printed with two-space indentation.
func (s *Schema) JSONString(indent ...bool) (string, error) {
	var jsonBytes []byte
	var err error
	if len(indent) > 0 && indent[0] {
		jsonBytes, err = json.MarshalIndent(s, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// String returns the compact JSON representation of the schema, or an error
// message if marshalling fails.
func (s *Schema) String() string {
	jsonStr, err := s.JSONString()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return jsonStr
}
