package download

// Package download runs engine downloads: a single-slot orchestrator for
// one-off jobs and a sequential bulk sequencer for playlist sessions. Both
// normalize raw engine progress into a monotonic percentage.
