// Package oteladapters connects the observability contracts of package shell to OpenTelemetry.
//
// SlogBridgeLogger and OTelLogger satisfy shell.ContextualLogger, MetricsCollector satisfies
// shell.ContextualMetricsCollector and TracingCollector satisfies shell.TracingCollector.
// Wire them into the engine with engine.WithContextualLogger, engine.WithMetrics and engine.WithTracing.
package oteladapters
