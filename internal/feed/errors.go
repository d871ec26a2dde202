package feed

import "errors"

// Sentinel errors classifying feed failures. Fetch failures on the remote
// feeds are fatal for the run; a missing override file only degrades it.
var (
	// ErrFeedUnavailable indicates a required remote feed could not be
	// fetched or returned a non-success status.
	ErrFeedUnavailable = errors.New("required feed unavailable")

	// ErrNotText indicates a remote feed responded with something other
	// than delimited text.
	ErrNotText = errors.New("feed response is not text")

	// ErrOverrideMissing indicates the local override file does not exist
	// or cannot be read. Callers log a warning and continue API-only.
	ErrOverrideMissing = errors.New("override file unavailable")

	// ErrUnknownLayout indicates a feed layout name is not present in the
	// layout tables.
	ErrUnknownLayout = errors.New("unknown feed layout")
)
