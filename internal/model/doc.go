package model

// Package model defines domain data structures used across the app: resolved
// video metadata, playlist entries, download jobs, bulk session state, and
// the error taxonomy. Structures are designed for direct binding in the UI
// and explicit state transitions.
