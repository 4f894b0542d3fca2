package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapHandler(t *testing.T) {
	c, rec := createTestContext(http.MethodGet, "/sitemap.xml", nil, "")

	require.NoError(t, SitemapHandler("https://didimdol.example")(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<?xml"))

	var set struct {
		URLs []SitemapURL `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.URLs, 2)
	assert.Equal(t, "https://didimdol.example/", set.URLs[0].Loc)
}

func TestRobotsHandler(t *testing.T) {
	c, rec := createTestContext(http.MethodGet, "/robots.txt", nil, "")

	require.NoError(t, RobotsHandler("https://didimdol.example")(c))

	body := rec.Body.String()
	assert.Contains(t, body, "Disallow: /api/")
	assert.Contains(t, body, "Sitemap: https://didimdol.example/sitemap.xml")
}
