package extractor

import (
	"context"
	"log/slog"

	"github.com/leofalp/selfheal/core/validate"
	"github.com/leofalp/selfheal/internal/jsonschema"
	"github.com/leofalp/selfheal/providers/repair"
)

// Result is the outcome of one extraction. Exactly one of the two shapes
// occurs: Record is non-nil and Diagnostic is empty, or Record is nil and
// Diagnostic explains why no record could be produced. Repaired reports
// whether the record came from repaired text rather than the original input.
type Result[T any] struct {
	Record     *T
	Diagnostic string
	Repaired   bool
}

// Extractor composes a strict validator with an optional repair capability
// into a bounded-retry extraction pipeline: validate, and on failure repair
// at most once and re-validate.
//
// The two collaborators are independently substitutable; the extractor holds
// plain references to them and carries no state between calls, so it is safe
// for concurrent use.
type Extractor[T any] struct {
	validator  *validate.Validator[T]
	repairer   repair.Repairer
	schemaDesc string
	useRepair  bool
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option[T any] func(*Extractor[T])

// WithRepairer sets the repair capability invoked when direct validation
// fails.
func WithRepairer[T any](r repair.Repairer) Option[T] {
	return func(e *Extractor[T]) {
		e.repairer = r
	}
}

// WithRepairDisabled turns the repair step off: extraction then consists of
// the direct validation attempt only.
func WithRepairDisabled[T any]() Option[T] {
	return func(e *Extractor[T]) {
		e.useRepair = false
	}
}

// WithLogger sets the logger used to record when self-healing is triggered
// and how it went. Defaults to slog.Default().
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(e *Extractor[T]) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor around the given validator. The schema description
// handed to the repair capability is generated once here, from T's structure
// and jsonschema tags, and reused for every call.
func New[T any](validator *validate.Validator[T], opts ...Option[T]) *Extractor[T] {
	e := &Extractor[T]{
		validator:  validator,
		schemaDesc: jsonschema.Generate[T]().String(),
		useRepair:  true,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SchemaDescription returns the rendered schema passed to the repair
// capability. Useful for debugging prompts.
func (e *Extractor[T]) SchemaDescription() string {
	return e.schemaDesc
}

// Extract runs the pipeline on raw text. It never returns an error: every
// failure is converted into an absence [Result] carrying a diagnostic.
//
// The repair capability is invoked at most once per call, and its output is
// re-validated exactly once — there is no retry loop, so the cost of an
// extraction is bounded at one repair round trip. ctx governs that single
// call; wrap it with a timeout to bound latency.
func (e *Extractor[T]) Extract(ctx context.Context, raw string) Result[T] {
	record, err := e.validator.Parse(raw)
	if err == nil {
		return Result[T]{Record: record}
	}

	if !e.useRepair || e.repairer == nil {
		return Result[T]{Diagnostic: err.Error()}
	}

	e.logger.DebugContext(ctx, "direct validation failed, attempting repair", "error", err)

	candidate, repairErr := e.repairer.Repair(ctx, raw, e.schemaDesc)
	if repairErr != nil {
		e.logger.WarnContext(ctx, "repair capability failed", "error", repairErr)
		return Result[T]{Diagnostic: repairErr.Error()}
	}

	record, err = e.validator.Parse(candidate)
	if err != nil {
		e.logger.WarnContext(ctx, "repaired candidate still invalid", "error", err)
		return Result[T]{Diagnostic: err.Error()}
	}

	e.logger.DebugContext(ctx, "extraction recovered by repair")
	return Result[T]{Record: record, Repaired: true}
}
