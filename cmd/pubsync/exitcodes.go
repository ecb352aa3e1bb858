package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths, bad type table)
	ExitDataError   = 3 // Data error (malformed input, unreadable store)
	ExitFlagged     = 4 // Import finished but some items need manual review
)
