package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPageInsideLayout(t *testing.T) {
	html := render(t, context.Background(), Error(404, "<b>없는 페이지</b>"))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, `<meta name="robots" content="noindex, nofollow">`)
	assert.Contains(t, html, `<p class="error-page__code">404</p>`)
	assert.Contains(t, html, `<p class="error-page__message">&lt;b&gt;없는 페이지&lt;/b&gt;</p>`)
	assert.Contains(t, html, "처음으로 돌아가기")

	// The page body sits between the head and the trailing script
	body := html[strings.Index(html, "<body>"):]
	assert.True(t, strings.HasPrefix(body, `<body><main class="error-page">`))
	assert.True(t, strings.HasSuffix(body, "</script></body></html>"))
}

func TestErrorPageWithoutMessage(t *testing.T) {
	html := render(t, context.Background(), Error(500, ""))

	assert.Contains(t, html, `<p class="error-page__code">500</p>`)
	assert.NotContains(t, html, "error-page__message")
}
