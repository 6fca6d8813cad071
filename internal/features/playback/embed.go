package playback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

var ErrInvalidMediaType = errors.New("media type must be movie or tv")

// BuildEmbedURL assembles the player URL for a title. Series default to the
// first episode of the first season when none is given.
func BuildEmbedURL(baseURL string, mediaType types.MediaType, mediaID int64, season, episode int) (string, error) {
	base := strings.TrimRight(baseURL, "/")

	switch mediaType {
	case types.MediaTypeMovie:
		return fmt.Sprintf("%s/movie/%d", base, mediaID), nil
	case types.MediaTypeTV:
		if season < 1 {
			season = 1
		}
		if episode < 1 {
			episode = 1
		}
		return fmt.Sprintf("%s/tv/%d/%d/%d", base, mediaID, season, episode), nil
	default:
		return "", ErrInvalidMediaType
	}
}
