// Package testutil provides shared helpers for kdgo tests and
// benchmarks: a seeded thread-safe RNG and a brute-force linear-scan
// k-NN reference to cross-check tree results against.
package testutil
