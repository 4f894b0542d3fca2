package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"didimdol_landing_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeNotion records every page it is asked to create
type fakeNotion struct {
	mu    sync.Mutex
	pages []models.NotionPageRequest
	err   error
}

func (f *fakeNotion) CreatePage(ctx context.Context, page models.NotionPageRequest) (*models.NotionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
	if f.err != nil {
		return nil, f.err
	}
	return &models.NotionPage{Object: "page", ID: "page-" + string(rune('0'+len(f.pages)))}, nil
}

func (f *fakeNotion) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pages)
}

func newTestRelay(cfg RelayConfig, notion NotionClient) (*ConsultationRelay, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	relay := NewConsultationRelay(cfg, notion, zap.New(core))
	relay.now = func() time.Time { return time.Date(2025, 3, 1, 18, 30, 0, 0, time.FixedZone("KST", 9*3600)) }
	return relay, logs
}

var configured = RelayConfig{APIKey: "secret_abc", DatabaseID: "db-123"}

func TestRelayConfigConfigured(t *testing.T) {
	assert.True(t, configured.Configured())
	assert.False(t, RelayConfig{APIKey: "secret_abc"}.Configured())
	assert.False(t, RelayConfig{DatabaseID: "db-123"}.Configured())
	assert.False(t, RelayConfig{}.Configured())
}

func TestRelaySubmitMissingFields(t *testing.T) {
	notion := &fakeNotion{}
	relay, logs := newTestRelay(configured, notion)

	cases := []models.ConsultationPayload{
		{Phone: "010-1234-5678", Message: "문의"},
		{Name: "홍길동"},
		{Name: "   ", Phone: "010-1234-5678"},
		{Name: "홍길동", Phone: "  "},
		{},
	}

	for _, payload := range cases {
		result, err := relay.Submit(context.Background(), payload)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrMissingRequiredFields)
	}

	assert.Equal(t, 0, notion.calls())
	assert.Equal(t, 0, logs.Len())
}

func TestRelaySubmitLogOnly(t *testing.T) {
	t.Run("Unconfigured relay logs exactly one record", func(t *testing.T) {
		notion := &fakeNotion{}
		relay, logs := newTestRelay(RelayConfig{}, notion)

		result, err := relay.Submit(context.Background(), models.ConsultationPayload{
			Name:  "홍길동",
			Phone: "010-1234-5678",
		})

		require.NoError(t, err)
		assert.False(t, result.Forwarded)
		assert.NotEmpty(t, result.Submission.ID)
		assert.Equal(t, 0, notion.calls())

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		fields := entry.ContextMap()
		assert.Equal(t, "consultation", entry.LoggerName)
		assert.Equal(t, "홍길동", fields["name"])
		assert.Equal(t, "010-1234-5678", fields["phone"])
		assert.Equal(t, "", fields["message"])
		assert.Equal(t, "2025-03-01T09:30:00.000Z", fields["timestamp"])
		assert.Equal(t, result.Submission.ID, fields["submission_id"])
	})

	t.Run("Key without database stays log-only", func(t *testing.T) {
		notion := &fakeNotion{}
		relay, logs := newTestRelay(RelayConfig{APIKey: "secret_abc"}, notion)

		_, err := relay.Submit(context.Background(), models.ConsultationPayload{Name: "홍길동", Phone: "01012345678"})
		require.NoError(t, err)
		assert.Equal(t, 0, notion.calls())
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("Configured without client stays log-only", func(t *testing.T) {
		relay, logs := newTestRelay(configured, nil)

		_, err := relay.Submit(context.Background(), models.ConsultationPayload{Name: "홍길동", Phone: "01012345678"})
		require.NoError(t, err)
		assert.Equal(t, 1, logs.Len())
	})
}

func TestRelaySubmitForward(t *testing.T) {
	t.Run("Forwards mapped page", func(t *testing.T) {
		notion := &fakeNotion{}
		relay, logs := newTestRelay(configured, notion)

		result, err := relay.Submit(context.Background(), models.ConsultationPayload{
			Name:    "홍길동",
			Phone:   "010-1234-5678",
			Message: "개인회생 상담 원합니다",
		})

		require.NoError(t, err)
		assert.True(t, result.Forwarded)
		assert.Equal(t, "page-1", result.PageID)
		require.Equal(t, 1, notion.calls())
		assert.Equal(t, 0, logs.Len())

		page := notion.pages[0]
		assert.Equal(t, "db-123", page.Parent.DatabaseID)
		assert.Equal(t, "홍길동", page.Properties[models.NotionPropName].Title[0].Text.Content)
		assert.Equal(t, "010-1234-5678", *page.Properties[models.NotionPropPhone].PhoneNumber)
		assert.Equal(t, "개인회생 상담 원합니다", page.Properties[models.NotionPropMessage].RichText[0].Text.Content)
		assert.Equal(t, "2025-03-01T09:30:00.000Z", page.Properties[models.NotionPropCreatedAt].Date.Start)
		assert.Equal(t, models.NotionStatusNew, page.Properties[models.NotionPropStatus].Select.Name)
	})

	t.Run("Notion failure is wrapped and logged", func(t *testing.T) {
		notion := &fakeNotion{err: &NotionAPIError{StatusCode: http.StatusUnauthorized, Body: `{"code":"unauthorized"}`}}
		relay, logs := newTestRelay(configured, notion)

		result, err := relay.Submit(context.Background(), models.ConsultationPayload{Name: "홍길동", Phone: "010-1234-5678"})

		assert.Nil(t, result)
		var apiErr *NotionAPIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, 1, notion.calls())

		errorLogs := logs.FilterLevelExact(zapcore.ErrorLevel)
		require.Equal(t, 1, errorLogs.Len())
		assert.Contains(t, errorLogs.All()[0].ContextMap()["error"], "unauthorized")
	})
}

func TestRelaySubmitNotIdempotent(t *testing.T) {
	payload := models.ConsultationPayload{Name: "홍길동", Phone: "010-1234-5678", Message: "같은 내용"}

	t.Run("Two forwards create two pages", func(t *testing.T) {
		notion := &fakeNotion{}
		relay, _ := newTestRelay(configured, notion)

		first, err := relay.Submit(context.Background(), payload)
		require.NoError(t, err)
		second, err := relay.Submit(context.Background(), payload)
		require.NoError(t, err)

		assert.Equal(t, 2, notion.calls())
		assert.NotEqual(t, first.Submission.ID, second.Submission.ID)
		assert.NotEqual(t, first.PageID, second.PageID)
	})

	t.Run("Two log-only submissions create two records", func(t *testing.T) {
		relay, logs := newTestRelay(RelayConfig{}, nil)

		_, err := relay.Submit(context.Background(), payload)
		require.NoError(t, err)
		_, err = relay.Submit(context.Background(), payload)
		require.NoError(t, err)

		require.Equal(t, 2, logs.Len())
		assert.NotEqual(t, logs.All()[0].ContextMap()["submission_id"], logs.All()[1].ContextMap()["submission_id"])
	})
}

func TestRelayKeepsTextAsSubmitted(t *testing.T) {
	notion := &fakeNotion{}
	relay, _ := newTestRelay(configured, notion)

	result, err := relay.Submit(context.Background(), models.ConsultationPayload{
		Name:    "<Kim>",
		Phone:   " 010-1234-5678 ",
		Message: "부채 a<b and c>d 원",
	})

	require.NoError(t, err)
	assert.True(t, result.Forwarded)
	assert.Equal(t, "<Kim>", result.Submission.Name)
	assert.Equal(t, "010-1234-5678", result.Submission.Phone)

	require.Equal(t, 1, notion.calls())
	props := notion.pages[0].Properties
	assert.Equal(t, "<Kim>", props[models.NotionPropName].Title[0].Text.Content)
	assert.Equal(t, "부채 a<b and c>d 원", props[models.NotionPropMessage].RichText[0].Text.Content)
}

func TestRelayLogsTextAsSubmitted(t *testing.T) {
	relay, logs := newTestRelay(RelayConfig{}, nil)

	_, err := relay.Submit(context.Background(), models.ConsultationPayload{
		Name:    "<b>홍길동</b>",
		Phone:   "010-1234-5678",
		Message: `빚 & 이자 <script>alert("x")</script>`,
	})

	require.NoError(t, err)
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "<b>홍길동</b>", fields["name"])
	assert.Equal(t, `빚 & 이자 <script>alert("x")</script>`, fields["message"])
}
