// Package normalisers provides implementations of the Normaliser interface
// for the supported document formats. Each normaliser knows how to extract
// text content from files with a specific set of extensions.
//
// Normalisers are registered with the Registry at startup.
package normalisers
