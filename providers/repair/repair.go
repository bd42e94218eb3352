// Package repair defines the contract for a text-repair capability used by
// the self-healing extraction pipeline.
//
// A Repairer accepts arbitrary raw text plus a description of the target
// schema and returns best-effort "cleaned" text. It may be slow, costly and
// fallible (the reference implementation is an LLM round trip), and it gives
// no validation guarantee: its output must always be re-validated and never
// trusted directly.
package repair

import (
	"context"
	"fmt"
)

// Repairer attempts to rewrite raw text so that it is more likely to parse
// and validate against the target schema. schemaDescription conveys the
// expected field names, types and constraints (typically a rendered JSON
// Schema).
//
// Implementations must perform at most one attempt per call and must honor
// ctx cancellation; bounding latency is the caller's concern via ctx.
type Repairer interface {
	Repair(ctx context.Context, raw string, schemaDescription string) (string, error)
}

// UnavailableError reports that the repair capability could not be reached or
// itself failed, so no candidate text was produced.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("repair capability unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
