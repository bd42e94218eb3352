// Package jsonschema generates JSON Schema descriptions from Go types via
// reflection. The generated schema is what the extraction pipeline hands to a
// repair capability so it knows which fields, types and constraints the
// target record expects. Constraints are declared with `jsonschema` struct
// tags (description, enum, required, minimum, maximum, exclusiveMinimum,
// minItems).
package jsonschema
