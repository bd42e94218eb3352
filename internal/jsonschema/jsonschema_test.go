package jsonschema

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

type product struct {
	Name     string   `json:"name" jsonschema:"required,description=Product name"`
	Price    float64  `json:"price" jsonschema:"required,description=Product price in USD,exclusiveMinimum=0"`
	Category string   `json:"category" jsonschema:"description=Product category,enum=Electronics,enum=Books"`
	InStock  bool     `json:"in_stock"`
	Tags     []string `json:"tags" jsonschema:"minItems=1"`
	Rating   *float64 `json:"rating,omitempty" jsonschema:"description=Product rating 0-5,minimum=0,maximum=5"`
	Internal string   `json:"-"`
	hidden   int
}

func TestGenerate_Product(t *testing.T) {
	schema := Generate[product]()

	if schema.Type != "object" {
		t.Fatalf("Type = %q, want object", schema.Type)
	}

	wantTypes := map[string]string{
		"name":     "string",
		"price":    "number",
		"category": "string",
		"in_stock": "boolean",
		"tags":     "array",
		"rating":   "number",
	}
	if len(schema.Properties) != len(wantTypes) {
		t.Errorf("got %d properties, want %d: %v", len(schema.Properties), len(wantTypes), schema.Properties)
	}
	for name, wantType := range wantTypes {
		prop, ok := schema.Properties[name]
		if !ok {
			t.Errorf("missing property %q", name)
			continue
		}
		if prop.Type != wantType {
			t.Errorf("property %q type = %q, want %q", name, prop.Type, wantType)
		}
	}

	if _, ok := schema.Properties["Internal"]; ok {
		t.Error("json:\"-\" field should be skipped")
	}

	gotRequired := append([]string(nil), schema.Required...)
	sort.Strings(gotRequired)
	wantRequired := []string{"category", "in_stock", "name", "price", "tags"}
	if !reflect.DeepEqual(gotRequired, wantRequired) {
		t.Errorf("Required = %v, want %v", gotRequired, wantRequired)
	}
}

func TestGenerate_ConstraintTags(t *testing.T) {
	schema := Generate[product]()

	price := schema.Properties["price"]
	if price.ExclusiveMinimum == nil || *price.ExclusiveMinimum != 0 {
		t.Errorf("price.ExclusiveMinimum = %v, want 0", price.ExclusiveMinimum)
	}

	rating := schema.Properties["rating"]
	if rating.Minimum == nil || *rating.Minimum != 0 {
		t.Errorf("rating.Minimum = %v, want 0", rating.Minimum)
	}
	if rating.Maximum == nil || *rating.Maximum != 5 {
		t.Errorf("rating.Maximum = %v, want 5", rating.Maximum)
	}
	if rating.Description != "Product rating 0-5" {
		t.Errorf("rating.Description = %q", rating.Description)
	}

	tags := schema.Properties["tags"]
	if tags.MinItems == nil || *tags.MinItems != 1 {
		t.Errorf("tags.MinItems = %v, want 1", tags.MinItems)
	}
	if tags.Items == nil || tags.Items.Type != "string" {
		t.Errorf("tags.Items = %+v, want string items", tags.Items)
	}

	category := schema.Properties["category"]
	if !reflect.DeepEqual(category.Enum, []any{"Electronics", "Books"}) {
		t.Errorf("category.Enum = %v, want [Electronics Books]", category.Enum)
	}
}

func TestGenerate_NestedStruct(t *testing.T) {
	type dimensions struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	type box struct {
		Label string     `json:"label"`
		Size  dimensions `json:"size"`
	}

	schema := Generate[box]()

	size, ok := schema.Properties["size"]
	if !ok {
		t.Fatal("missing property size")
	}
	if size.Type != "object" {
		t.Errorf("size.Type = %q, want object", size.Type)
	}
	if size.Properties["width"] == nil || size.Properties["width"].Type != "number" {
		t.Errorf("size.width = %+v, want number", size.Properties["width"])
	}
}

func TestSchema_JSONString(t *testing.T) {
	schema := Generate[product]()

	compact, err := schema.JSONString()
	if err != nil {
		t.Fatalf("JSONString() error: %v", err)
	}
	for _, want := range []string{`"properties"`, `"price"`, `"exclusiveMinimum":0`, `"minItems":1`} {
		if !strings.Contains(compact, want) {
			t.Errorf("JSONString() missing %s:\n%s", want, compact)
		}
	}

	indented, err := schema.JSONString(true)
	if err != nil {
		t.Fatalf("JSONString(true) error: %v", err)
	}
	if !strings.Contains(indented, "\n  ") {
		t.Error("JSONString(true) is not indented")
	}

	if schema.String() != compact {
		t.Error("String() should match compact JSONString()")
	}
}
