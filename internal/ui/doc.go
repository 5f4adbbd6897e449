package ui

// Package ui provides the Fyne desktop interface: the root window with URL
// analysis, download options, progress reporting and playlist bulk
// downloads, plus UI text localization.
