// Package validate implements the strict parse-and-validate step of the
// extraction pipeline: decode raw text under strict JSON syntax, then apply a
// declarative table of per-field rules in order.
//
// Failures are typed so callers can distinguish text that is not JSON at all
// ([MalformedInputError]) from well-formed JSON that violates a field
// constraint ([ValidationError], which always names the offending field).
package validate
