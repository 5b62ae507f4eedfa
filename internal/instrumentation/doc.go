// Package instrumentation provides OpenTelemetry metrics with a Prometheus
// exporter. Metrics are exposed on a dedicated HTTP port, never on the MCP
// stdio channel; when disabled, the recorder degrades to a no-op.
package instrumentation
