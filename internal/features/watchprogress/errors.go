package watchprogress

import "errors"

var (
	ErrProgressNotFound = errors.New("watch progress not found")
	ErrInvalidMediaType = errors.New("media type must be movie or tv")
	ErrInvalidProgress  = errors.New("progress and duration must not be negative")
)
