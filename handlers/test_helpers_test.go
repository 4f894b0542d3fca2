package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"didimdol_landing_go/config"
	"didimdol_landing_go/models"
	"didimdol_landing_go/services"
	"didimdol_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		AppURL:      "https://didimdol.example",
		YouTubeURL:  "https://youtube.com/@didimdol",
		BlogURL:     "https://blog.naver.com/didimdol",
	}
}

// createTestContext builds an echo context whose request carries lang
func createTestContext(method, target string, body io.Reader, lang string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if lang != "" {
		req = req.WithContext(i18n.WithLocale(req.Context(), lang))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// stubRelay records payloads and replays a fixed outcome
type stubRelay struct {
	mu        sync.Mutex
	payloads  []models.ConsultationPayload
	forwarded bool
	err       error
}

func (s *stubRelay) Submit(ctx context.Context, payload models.ConsultationPayload) (*services.RelayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	if s.err != nil {
		return nil, s.err
	}
	return &services.RelayResult{Forwarded: s.forwarded}, nil
}

func (s *stubRelay) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

// failingNotion stands in for a Notion outage
type failingNotion struct{}

func (failingNotion) CreatePage(ctx context.Context, page models.NotionPageRequest) (*models.NotionPage, error) {
	return nil, &services.NotionAPIError{
		StatusCode: http.StatusUnauthorized,
		Body:       `{"code":"unauthorized","message":"API token is invalid."}`,
	}
}

var errRelayDown = errors.New("relay down")

func newObservedLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func requireNoI18nError(t *testing.T) {
	t.Helper()
	require.NoError(t, i18n.Load())
}

// loggerNamed matches entries written by the named child logger
func loggerNamed(name string) func(observer.LoggedEntry) bool {
	return func(e observer.LoggedEntry) bool { return e.LoggerName == name }
}
