// Package pipeline fans reference genomes out to a pool of comparison
// workers and funnels the scored results back to a single visit callback.
//
// The only contract to implement is Comparer (Compare).
// This keeps the pipeline swappable and testable without an aligner.
package pipeline
