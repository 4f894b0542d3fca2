package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"didimdol_landing_go/models"
	"didimdol_landing_go/services"
	"didimdol_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ConsultationRelay is the part of services.ConsultationRelay the handlers use
type ConsultationRelay interface {
	Submit(ctx context.Context, payload models.ConsultationPayload) (*services.RelayResult, error)
}

// ConsultationHandler handles POST /api/consultation.
// 200 {success, message} when forwarded or logged, 400 {error} when name or
// phone is missing, 500 {error} for a Notion failure or an unreadable body.
func ConsultationHandler(relay ConsultationRelay, log *zap.Logger) echo.HandlerFunc {
	log = log.Named("api")
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var payload models.ConsultationPayload
		if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
			// Body limit and similar middleware errors keep their own status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				return err
			}
			log.Warn("unreadable consultation body", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: i18n.T(ctx, "api.server_error"),
			})
		}

		resp, err := relayConsultation(ctx, relay, payload)
		if err != nil {
			status, body := errorResponse(ctx, err)
			return c.JSON(status, body)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// relayConsultation submits payload and builds the success body. Errors are
// returned untouched for errorResponse to map.
func relayConsultation(ctx context.Context, relay ConsultationRelay, payload models.ConsultationPayload) (*models.ConsultationResponse, error) {
	result, err := relay.Submit(ctx, payload)
	if err != nil {
		return nil, err
	}

	msgKey := "api.accepted"
	if !result.Forwarded {
		msgKey = "api.accepted_log_only"
	}
	return &models.ConsultationResponse{
		Success: true,
		Message: i18n.T(ctx, msgKey),
	}, nil
}

// errorResponse maps a relay error to a status and a body that never
// carries upstream details.
func errorResponse(ctx context.Context, err error) (int, models.ErrorResponse) {
	if errors.Is(err, services.ErrMissingRequiredFields) {
		return http.StatusBadRequest, models.ErrorResponse{Error: i18n.T(ctx, "api.required_fields")}
	}
	return http.StatusInternalServerError, models.ErrorResponse{Error: i18n.T(ctx, "api.relay_failed")}
}

// relayError carries the status and body of a failed relay call through
// the consultform.Sender interface.
type relayError struct {
	status int
	body   models.ErrorResponse
	cause  error
}

func (e *relayError) Error() string { return e.body.Error }
func (e *relayError) Unwrap() error { return e.cause }
