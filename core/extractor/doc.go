// Package extractor implements the self-healing orchestrator: a strict
// validation attempt, and on failure a single bounded repair attempt followed
// by one re-validation.
//
// The orchestrator never returns an error past its own boundary. Callers
// always receive either a fully valid record or an absence result with a
// diagnostic — never a partially validated object, and never more than one
// repair round trip per input.
package extractor
