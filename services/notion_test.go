package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"didimdol_landing_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubmission() models.Submission {
	return models.Submission{
		ID:          "sub-1",
		Name:        "홍길동",
		Phone:       "010-1234-5678",
		Message:     "",
		SubmittedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestBuildConsultationPage(t *testing.T) {
	page := BuildConsultationPage("db-123", testSubmission())

	raw, err := json.Marshal(page)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, map[string]interface{}{"database_id": "db-123"}, decoded["parent"])

	props := decoded["properties"].(map[string]interface{})
	assert.Len(t, props, 5)

	title := props["이름"].(map[string]interface{})["title"].([]interface{})
	assert.Equal(t, "홍길동", title[0].(map[string]interface{})["text"].(map[string]interface{})["content"])

	assert.Equal(t, "010-1234-5678", props["연락처"].(map[string]interface{})["phone_number"])

	// An empty message is still sent as a single empty rich text item
	richText := props["상담내용"].(map[string]interface{})["rich_text"].([]interface{})
	require.Len(t, richText, 1)
	assert.Equal(t, "", richText[0].(map[string]interface{})["text"].(map[string]interface{})["content"])

	date := props["신청일시"].(map[string]interface{})["date"].(map[string]interface{})
	assert.Equal(t, "2025-03-01T09:30:00.000Z", date["start"])

	status := props["상태"].(map[string]interface{})["select"].(map[string]interface{})
	assert.Equal(t, "신규", status["name"])
}

func TestNotionClientCreatePage(t *testing.T) {
	t.Run("Sends headers and body", func(t *testing.T) {
		var gotPath, gotAuth, gotVersion, gotContentType string
		var gotBody models.NotionPageRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotVersion = r.Header.Get("Notion-Version")
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &gotBody)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"object":"page","id":"page-1","url":"https://notion.so/page-1"}`))
		}))
		defer server.Close()

		client := NewNotionClient("secret_abc", server.URL+"/v1", server.Client())
		page, err := client.CreatePage(context.Background(), BuildConsultationPage("db-123", testSubmission()))

		require.NoError(t, err)
		assert.Equal(t, "page-1", page.ID)
		assert.Equal(t, "/v1/pages", gotPath)
		assert.Equal(t, "Bearer secret_abc", gotAuth)
		assert.Equal(t, "2022-06-28", gotVersion)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "db-123", gotBody.Parent.DatabaseID)
	})

	t.Run("Non-2xx returns NotionAPIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"object":"error","status":400,"code":"validation_error","message":"상태 is not a property that exists."}`))
		}))
		defer server.Close()

		client := NewNotionClient("secret_abc", server.URL, nil)
		page, err := client.CreatePage(context.Background(), BuildConsultationPage("db-123", testSubmission()))

		assert.Nil(t, page)
		var apiErr *NotionAPIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "validation_error", apiErr.Detail.Code)
		assert.Contains(t, err.Error(), "validation_error")
	})

	t.Run("Non-JSON error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down"))
		}))
		defer server.Close()

		client := NewNotionClient("secret_abc", server.URL, nil)
		_, err := client.CreatePage(context.Background(), BuildConsultationPage("db-123", testSubmission()))

		var apiErr *NotionAPIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "upstream down", apiErr.Body)
		assert.Contains(t, err.Error(), "upstream down")
	})

	t.Run("Malformed success body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{ malformed json }"))
		}))
		defer server.Close()

		client := NewNotionClient("secret_abc", server.URL, nil)
		_, err := client.CreatePage(context.Background(), BuildConsultationPage("db-123", testSubmission()))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing notion response")
	})

	t.Run("Transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := NewNotionClient("secret_abc", url, nil)
		_, err := client.CreatePage(context.Background(), BuildConsultationPage("db-123", testSubmission()))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error calling notion")
	})
}
