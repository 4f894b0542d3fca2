package models

// Property names of the consultation database in Notion
const (
	NotionPropName      = "이름"
	NotionPropPhone     = "연락처"
	NotionPropMessage   = "상담내용"
	NotionPropCreatedAt = "신청일시"
	NotionPropStatus    = "상태"
)

// NotionStatusNew is the select option every new lead starts with
const NotionStatusNew = "신규"

type NotionParent struct {
	DatabaseID string `json:"database_id"`
}

type NotionText struct {
	Content string `json:"content"`
}

type NotionRichText struct {
	Text NotionText `json:"text"`
}

type NotionDate struct {
	Start string `json:"start"`
}

type NotionSelect struct {
	Name string `json:"name"`
}

// NotionProperty holds exactly one of the typed values supported by the database
type NotionProperty struct {
	Title       []NotionRichText `json:"title,omitempty"`
	RichText    []NotionRichText `json:"rich_text,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	Date        *NotionDate      `json:"date,omitempty"`
	Select      *NotionSelect    `json:"select,omitempty"`
}

// NotionPageRequest is the body of POST /v1/pages
type NotionPageRequest struct {
	Parent     NotionParent              `json:"parent"`
	Properties map[string]NotionProperty `json:"properties"`
}

// NotionPage is the subset of the page object we read back
type NotionPage struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	URL    string `json:"url"`
}

// NotionErrorBody is the error object returned with non-2xx responses
type NotionErrorBody struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
