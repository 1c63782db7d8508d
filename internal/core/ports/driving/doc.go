// Package driving defines the inbound ports of the application core.
// These interfaces are implemented by core services and consumed by
// driving adapters such as the CLI.
package driving
