// Package server exposes page analysis over HTTP.
//
// Routes:
//
//	POST /api/analyze           analyze one URL
//	POST /api/analyze-multiple  analyze up to MaxBatchSize URLs and aggregate them
//	GET  /healthz               liveness probe
//	GET  /metrics               Prometheus metrics
//
// Every error response is a JSON object {"error": message}. Validation
// messages are Japanese because they are shown to end users as-is.
package server
