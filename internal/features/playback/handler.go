package playback

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jdverbeke/cinevault-server-go/pkg/response"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// Handler processes playback HTTP requests.
type Handler struct {
	embedBaseURL string
	logger       *slog.Logger
}

// NewHandler constructs a playback handler instance.
func NewHandler(embedBaseURL string, logger *slog.Logger) *Handler {
	return &Handler{embedBaseURL: embedBaseURL, logger: logger}
}

type sourceResponse struct {
	EmbedURL  string          `json:"embedUrl"`
	MediaType types.MediaType `json:"mediaType"`
	MediaID   int64           `json:"mediaId"`
	Season    int             `json:"season,omitempty"`
	Episode   int             `json:"episode,omitempty"`
}

// Source resolves the embed URL for a title. The license gate runs before
// this handler, so reaching it means the caller may watch.
func (h *Handler) Source(c *gin.Context) {
	mediaType := types.MediaType(c.Param("mediaType"))
	mediaID, err := strconv.ParseInt(c.Param("mediaId"), 10, 64)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid media id", err)
		return
	}

	season := intQuery(c, "season")
	episode := intQuery(c, "episode")

	embedURL, err := BuildEmbedURL(h.embedBaseURL, mediaType, mediaID, season, episode)
	if err != nil {
		if errors.Is(err, ErrInvalidMediaType) {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, ErrInvalidMediaType.Error(), err)
			return
		}
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to resolve playback source", err)
		return
	}

	resp := sourceResponse{
		EmbedURL:  embedURL,
		MediaType: mediaType,
		MediaID:   mediaID,
	}
	if mediaType == types.MediaTypeTV {
		resp.Season = max(season, 1)
		resp.Episode = max(episode, 1)
	}

	response.Success(c, http.StatusOK, resp, "", nil)
}

func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
