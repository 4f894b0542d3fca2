package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"didimdol_landing_go/models"
)

// NotionVersion is the API version pinned in every request
const NotionVersion = "2022-06-28"

// TimestampLayout is ISO-8601 with millisecond precision, e.g. 2025-03-01T09:30:00.000Z
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NotionClient creates pages in a Notion database
type NotionClient interface {
	CreatePage(ctx context.Context, page models.NotionPageRequest) (*models.NotionPage, error)
}

// NotionAPIError is returned for any non-2xx response from Notion
type NotionAPIError struct {
	StatusCode int
	Body       string
	Detail     models.NotionErrorBody
}

func (e *NotionAPIError) Error() string {
	if e.Detail.Code != "" {
		return fmt.Sprintf("notion api returned %d (%s): %s", e.StatusCode, e.Detail.Code, e.Detail.Message)
	}
	return fmt.Sprintf("notion api returned %d: %s", e.StatusCode, e.Body)
}

type notionClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewNotionClient returns a client for the Notion REST API at baseURL
// (e.g. https://api.notion.com/v1). A nil httpClient uses http.DefaultClient.
func NewNotionClient(apiKey, baseURL string, httpClient *http.Client) NotionClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &notionClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *notionClient) CreatePage(ctx context.Context, page models.NotionPageRequest) (*models.NotionPage, error) {
	jsonPayload, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pages", bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", NotionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling notion: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading notion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &NotionAPIError{StatusCode: resp.StatusCode, Body: string(body)}
		// Best effort, the raw body is kept either way
		_ = json.Unmarshal(body, &apiErr.Detail)
		return nil, apiErr
	}

	var created models.NotionPage
	if len(body) > 0 {
		if err := json.Unmarshal(body, &created); err != nil {
			return nil, fmt.Errorf("error parsing notion response: %w", err)
		}
	}

	return &created, nil
}

// BuildConsultationPage maps a submission onto the consultation database schema
func BuildConsultationPage(databaseID string, s models.Submission) models.NotionPageRequest {
	phone := s.Phone
	return models.NotionPageRequest{
		Parent: models.NotionParent{DatabaseID: databaseID},
		Properties: map[string]models.NotionProperty{
			models.NotionPropName: {
				Title: []models.NotionRichText{{Text: models.NotionText{Content: s.Name}}},
			},
			models.NotionPropPhone: {
				PhoneNumber: &phone,
			},
			models.NotionPropMessage: {
				RichText: []models.NotionRichText{{Text: models.NotionText{Content: s.Message}}},
			},
			models.NotionPropCreatedAt: {
				Date: &models.NotionDate{Start: s.SubmittedAt.UTC().Format(TimestampLayout)},
			},
			models.NotionPropStatus: {
				Select: &models.NotionSelect{Name: models.NotionStatusNew},
			},
		},
	}
}
