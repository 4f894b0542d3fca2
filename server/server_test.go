package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"didimdol_landing_go/config"
	"didimdol_landing_go/middleware"
	"didimdol_landing_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var csrfInput = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

type testServer struct {
	e    *echo.Echo
	logs *observer.ObservedLogs
}

func newTestServer(t *testing.T, requests int) *testServer {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	cfg := &config.Config{
		Environment:    "development",
		AppURL:         "https://didimdol.example",
		AllowedOrigins: []string{"*"},
	}
	e := New(Options{
		Config: cfg,
		Logger: log,
		Relay:  services.NewConsultationRelay(cfg.Relay(), nil, log),
		FormLimiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			Requests: requests,
			Window:   time.Minute,
		}),
	})
	return &testServer{e: e, logs: logs}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// loggerNamed matches entries written by the named child logger
func loggerNamed(name string) func(observer.LoggedEntry) bool {
	return func(e observer.LoggedEntry) bool { return e.LoggerName == name }
}

func (s *testServer) consultationLogs() int {
	return s.logs.Filter(loggerNamed("consultation")).Len()
}

func TestLandingPage(t *testing.T) {
	s := newTestServer(t, 10)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	csp := rec.Header().Get("Content-Security-Policy")
	require.NotEmpty(t, csp)

	nonce := regexp.MustCompile(`'nonce-([^']+)'`).FindStringSubmatch(csp)
	require.Len(t, nonce, 2)
	assert.Contains(t, rec.Body.String(), `nonce="`+nonce[1]+`"`)
	assert.Contains(t, rec.Body.String(), `<html lang="ko">`)
	assert.Regexp(t, csrfInput, rec.Body.String())
}

func TestLandingPageLanguage(t *testing.T) {
	s := newTestServer(t, 10)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	var lang string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "lang" {
			lang = cookie.Value
		}
	}
	assert.Equal(t, "en", lang)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,ko;q=0.8")
	rec = s.do(req)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t, 10)

	for _, path := range []string{"/static/css/landing.css", "/static/js/consultation.js"} {
		rec := s.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Body.String(), path)
	}
	assert.NotEqual(t, "1", middleware.AssetVersion(middleware.LandingCSS))
}

func TestConsultationAPI(t *testing.T) {
	s := newTestServer(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/consultation",
		strings.NewReader(`{"name":"홍길동","phone":"010-1234-5678","message":"상담 요청"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := s.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"상담 신청이 접수되었습니다 (Notion 미연동)"}`, rec.Body.String())
	assert.Equal(t, 1, s.consultationLogs())
}

func TestConsultationAPIMissingFields(t *testing.T) {
	s := newTestServer(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/consultation", strings.NewReader(`{"name":"홍길동"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := s.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"이름과 연락처는 필수입니다"}`, rec.Body.String())
	assert.Zero(t, s.consultationLogs())
}

func TestConsultationFormFallback(t *testing.T) {
	s := newTestServer(t, 10)

	page := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	match := csrfInput.FindStringSubmatch(page.Body.String())
	require.Len(t, match, 2)

	form := url.Values{
		"_csrf":   {match[1]},
		"name":    {"홍길동"},
		"phone":   {"01012345678"},
		"privacy": {"on"},
	}
	req := httptest.NewRequest(http.MethodPost, "/consultation", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range page.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rec := s.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-state="success"`)
	assert.Equal(t, 1, s.consultationLogs())
}

func TestConsultationFormRequiresToken(t *testing.T) {
	s := newTestServer(t, 10)

	form := url.Values{"name": {"홍길동"}, "phone": {"01012345678"}, "privacy": {"on"}}
	req := httptest.NewRequest(http.MethodPost, "/consultation", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := s.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Zero(t, s.consultationLogs())
}

func TestConsultationRateLimit(t *testing.T) {
	s := newTestServer(t, 2)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/consultation",
			strings.NewReader(`{"name":"홍길동","phone":"010-1234-5678"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return s.do(req)
	}

	assert.Equal(t, http.StatusOK, post().Code)
	assert.Equal(t, http.StatusOK, post().Code)

	rec := post()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, 2, s.consultationLogs())
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, 10)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"요청하신 페이지를 찾을 수 없습니다"}`, rec.Body.String())

	rec = s.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestHealthAndCrawlers(t *testing.T) {
	s := newTestServer(t, 10)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = s.do(httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://didimdol.example/</loc>")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	assert.Contains(t, rec.Body.String(), "Sitemap: https://didimdol.example/sitemap.xml")
}

func TestRequestsAreLogged(t *testing.T) {
	s := newTestServer(t, 10)

	s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := s.logs.Filter(loggerNamed("http")).FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/health", entries[0].ContextMap()["path"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
}

func TestConsultationBodyLimit(t *testing.T) {
	s := newTestServer(t, 10)

	body := `{"name":"홍길동","phone":"010-1234-5678","message":"` + strings.Repeat("가", 8*1024) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/consultation", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := s.do(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out["error"])
	assert.Zero(t, s.consultationLogs())
}
