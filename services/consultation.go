package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"didimdol_landing_go/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingRequiredFields is returned when name or phone is empty
var ErrMissingRequiredFields = errors.New("name and phone are required")

// RelayConfig is the Notion integration settings the relay is built with
type RelayConfig struct {
	APIKey     string
	DatabaseID string
}

// Configured reports whether submissions can be forwarded to Notion
func (c RelayConfig) Configured() bool {
	return c.APIKey != "" && c.DatabaseID != ""
}

// RelayResult describes what happened to an accepted submission
type RelayResult struct {
	Submission models.Submission
	// Forwarded is false when Notion is not configured and the submission was only logged
	Forwarded bool
	PageID    string
}

// ConsultationRelay accepts consultation payloads and either forwards them
// to Notion or, without Notion credentials, writes them to the log.
type ConsultationRelay struct {
	cfg    RelayConfig
	notion NotionClient
	log    *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewConsultationRelay builds a relay. notion may be nil when cfg is not configured.
func NewConsultationRelay(cfg RelayConfig, notion NotionClient, log *zap.Logger) *ConsultationRelay {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConsultationRelay{
		cfg:    cfg,
		notion: notion,
		log:    log.Named("consultation"),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Configured reports whether the relay forwards to Notion
func (r *ConsultationRelay) Configured() bool {
	return r.cfg.Configured() && r.notion != nil
}

// Submit validates the payload and performs exactly one side effect:
// a Notion page creation or a log record.
func (r *ConsultationRelay) Submit(ctx context.Context, payload models.ConsultationPayload) (*RelayResult, error) {
	name := strings.TrimSpace(payload.Name)
	phone := strings.TrimSpace(payload.Phone)
	if name == "" || phone == "" {
		return nil, ErrMissingRequiredFields
	}

	submission := models.Submission{
		ID:          r.newID(),
		Name:        name,
		Phone:       phone,
		Message:     payload.Message,
		SubmittedAt: r.now().UTC(),
	}

	if !r.Configured() {
		r.log.Info("consultation received (notion not configured)",
			zap.String("submission_id", submission.ID),
			zap.String("name", submission.Name),
			zap.String("phone", submission.Phone),
			zap.String("message", submission.Message),
			zap.String("timestamp", submission.SubmittedAt.Format(TimestampLayout)),
		)
		return &RelayResult{Submission: submission}, nil
	}

	page, err := r.notion.CreatePage(ctx, BuildConsultationPage(r.cfg.DatabaseID, submission))
	if err != nil {
		r.log.Error("notion page creation failed",
			zap.String("submission_id", submission.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("forward consultation %s: %w", submission.ID, err)
	}

	return &RelayResult{Submission: submission, Forwarded: true, PageID: page.ID}, nil
}
