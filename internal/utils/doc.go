// Package utils contains small internal helpers shared across the module:
// a generic JSON-over-HTTP POST helper used by the LLM-backed repairer, and
// string truncation used to keep diagnostics and log lines bounded.
package utils
