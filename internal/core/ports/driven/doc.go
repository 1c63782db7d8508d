// Package driven defines the outbound ports of the application core.
// These interfaces are implemented by adapters (filesystem record store,
// embedding backends, LLM clients) and consumed by the core services.
package driven
