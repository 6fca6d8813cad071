package favorite

import "errors"

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrInvalidMediaType = errors.New("media type must be movie or tv")
)
