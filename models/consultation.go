package models

import "time"

// ConsultationRequest is what the visitor fills in on the contact form.
// It only lives for the duration of one submission.
type ConsultationRequest struct {
	Name           string `validate:"required,min=1"`
	Phone          string `validate:"required,krmobile"`
	Message        string
	PrivacyConsent bool `validate:"required"`
}

// ConsultationPayload is the body sent from the form to the relay.
// The consent flag has no field here on purpose: it never leaves the client.
type ConsultationPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ConsultationResponse is the success body of POST /api/consultation
type ConsultationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the failure body of every /api endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// Submission is a validated payload stamped by the relay
type Submission struct {
	ID          string
	Name        string
	Phone       string
	Message     string
	SubmittedAt time.Time
}
