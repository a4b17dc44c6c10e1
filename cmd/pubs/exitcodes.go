package main

// Exit codes
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, unknown key)
	ExitConfigError  = 2 // Configuration error (unreadable or invalid pubs.yml)
	ExitDataError    = 3 // Source could not be fetched or parsed
	ExitLinkProblems = 4 // check found broken links
)
