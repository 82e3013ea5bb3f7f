// Package engine implements the stateful cryptographic contexts: incremental
// digests, the streaming cipher engine with its chaining modes and carry-buffer
// discipline, and public-key operation contexts. It also hosts the algorithm
// registry mapping names to immutable descriptors.
package engine
