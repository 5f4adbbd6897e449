package platform

// Package platform contains site and OS integration glue: URL
// classification, HTML page scraping, playlist expansion via the ytdlp
// library, and filesystem helpers.
