package engine

// Package engine defines the extraction-engine boundary: the Engine
// interface the resolver and orchestrator depend on, the option builder
// that translates user choices into engine configuration, and the adapter
// driving the external yt-dlp binary.
