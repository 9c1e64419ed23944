// Package logger builds slog loggers the way the rest of the pipeline
// expects them: JSON for aggregation in production, text for reading
// during development, with static attributes identifying the component.
//
// The pipeline itself logs in exactly one situation - a transformation
// failure, which signals schema/transformer drift rather than bad data -
// so the factory stays small. Embedding processes pass the built logger
// to pipeline.WithLogger and use it for their own concerns.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatJSON),
//	    logger.WithLevel(slog.LevelInfo),
//	    logger.WithAttr(slog.String("component", "pipeline")),
//	)
package logger
