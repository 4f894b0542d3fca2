package consultform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"didimdol_landing_go/models"
)

// Sender delivers a payload to the relay
type Sender interface {
	Send(ctx context.Context, payload models.ConsultationPayload) (*models.ConsultationResponse, error)
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, payload models.ConsultationPayload) (*models.ConsultationResponse, error)

func (f SenderFunc) Send(ctx context.Context, payload models.ConsultationPayload) (*models.ConsultationResponse, error) {
	return f(ctx, payload)
}

// HTTPSender posts payloads as JSON to the relay endpoint
type HTTPSender struct {
	URL    string
	Client *http.Client
}

// RelayError is returned when the relay answers with a non-2xx status
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, e.Message)
}

var errNotAccepted = errors.New("relay did not accept the submission")

func (s *HTTPSender) Send(ctx context.Context, payload models.ConsultationPayload) (*models.ConsultationResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling relay: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		relayErr := &RelayError{StatusCode: resp.StatusCode}
		var errBody models.ErrorResponse
		if json.Unmarshal(raw, &errBody) == nil {
			relayErr.Message = errBody.Error
		}
		return nil, relayErr
	}

	var out models.ConsultationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("error parsing relay response: %w", err)
	}
	if !out.Success {
		return nil, errNotAccepted
	}
	return &out, nil
}

// Form is one rendering of the contact form: what the visitor typed,
// what failed validation, and where the submission stands.
type Form struct {
	Values models.ConsultationRequest
	Errors ValidationErrors
	State  State
	// Notice is the relay's message after a successful send
	Notice string
}

// Submitter runs a form submission through validation, the state machine and a Sender
type Submitter struct {
	sender  Sender
	machine *Machine
}

// NewSubmitter returns a Submitter driving machine. A nil machine gets a
// fresh one with no automatic reset.
func NewSubmitter(sender Sender, machine *Machine) *Submitter {
	if machine == nil {
		machine = NewMachine(0, nil)
	}
	return &Submitter{sender: sender, machine: machine}
}

// Submit validates form.Values and, when valid, sends the payload.
// Validation failures leave the machine idle and return the ValidationErrors.
// On success the values are cleared; on failure they are kept so the
// visitor can retry after the reset.
func (s *Submitter) Submit(ctx context.Context, form *Form) error {
	form.Values = Normalize(form.Values)
	form.Errors = Validate(ctx, form.Values)
	if len(form.Errors) > 0 {
		form.State = s.machine.State()
		return form.Errors
	}

	if err := s.machine.Begin(); err != nil {
		form.State = s.machine.State()
		return err
	}

	resp, err := s.sender.Send(ctx, Payload(form.Values))
	if err != nil {
		s.machine.Fail()
		form.State = StateError
		return err
	}

	form.Values = models.ConsultationRequest{}
	form.Notice = resp.Message
	s.machine.Succeed()
	form.State = StateSuccess
	return nil
}
