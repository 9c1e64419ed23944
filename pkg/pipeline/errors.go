package pipeline

import "errors"

var (
	// ErrNilSchema is returned when a processor is built without a schema.
	ErrNilSchema = errors.New("processor requires a schema")

	// ErrNilTransformer is returned when a processor is built without a
	// transformer.
	ErrNilTransformer = errors.New("processor requires a transformer")

	// ErrInvariantViolation aborts a strict-mode batch when a transformer
	// fails on a schema-validated record. The schema and the transformer are
	// out of sync with each other; the data is not the problem.
	ErrInvariantViolation = errors.New("transformation invariant violation")
)
