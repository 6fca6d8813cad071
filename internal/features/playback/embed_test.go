package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

func TestBuildEmbedURLMovie(t *testing.T) {
	url, err := BuildEmbedURL("https://vidsrc-embed.ru/embed", types.MediaTypeMovie, 603, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://vidsrc-embed.ru/embed/movie/603", url)
}

func TestBuildEmbedURLSeries(t *testing.T) {
	url, err := BuildEmbedURL("https://vidsrc-embed.ru/embed", types.MediaTypeTV, 1396, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "https://vidsrc-embed.ru/embed/tv/1396/2/5", url)
}

func TestBuildEmbedURLSeriesDefaultsToFirstEpisode(t *testing.T) {
	url, err := BuildEmbedURL("https://vidsrc-embed.ru/embed", types.MediaTypeTV, 1396, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://vidsrc-embed.ru/embed/tv/1396/1/1", url)
}

func TestBuildEmbedURLTrimsTrailingSlash(t *testing.T) {
	url, err := BuildEmbedURL("https://vidsrc-embed.ru/embed/", types.MediaTypeMovie, 603, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://vidsrc-embed.ru/embed/movie/603", url)
}

func TestBuildEmbedURLRejectsUnknownType(t *testing.T) {
	_, err := BuildEmbedURL("https://vidsrc-embed.ru/embed", types.MediaType("book"), 1, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidMediaType)
}
