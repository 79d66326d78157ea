package export

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL_RoundTrips(t *testing.T) {
	html := `<html><body><h1>Ada Lovelace</h1><p>50% faster builds & más</p></body></html>`

	encoded := dataURL(html)

	require.True(t, strings.HasPrefix(encoded, "data:text/html;charset=utf-8,"))
	decoded, err := url.PathUnescape(strings.TrimPrefix(encoded, "data:text/html;charset=utf-8,"))
	require.NoError(t, err)
	assert.Equal(t, html, decoded)
}
