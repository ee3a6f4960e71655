/*
Package observability exports queue activity as Prometheus metrics.

Metrics.Listener returns a domain.StatusListener; register it on the queue and
serve Metrics.Handler (or the registry) under /metrics.
*/
package observability
