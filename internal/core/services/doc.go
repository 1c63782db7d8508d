// Package services implements the application core: document ingestion
// and question answering. Services depend only on the driven ports and
// are wired to concrete adapters at startup.
package services
