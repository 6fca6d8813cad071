package tmdb

import "errors"

// ErrNotFound is returned when TMDB has no record for the requested title.
var ErrNotFound = errors.New("title not found")
