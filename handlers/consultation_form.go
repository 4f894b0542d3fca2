package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"didimdol_landing_go/config"
	"didimdol_landing_go/consultform"
	"didimdol_landing_go/models"
	"didimdol_landing_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// ConsultationFormHandler handles POST /consultation, the plain form post
// browsers make without JavaScript. It runs the same validation and state
// machine as the page script and re-renders the page in the resulting state.
func ConsultationFormHandler(relay ConsultationRelay, cfg *config.Config) echo.HandlerFunc {
	sender := consultform.SenderFunc(func(ctx context.Context, payload models.ConsultationPayload) (*models.ConsultationResponse, error) {
		resp, err := relayConsultation(ctx, relay, payload)
		if err != nil {
			status, body := errorResponse(ctx, err)
			return nil, &relayError{status: status, body: body, cause: err}
		}
		return resp, nil
	})

	return func(c echo.Context) error {
		form := &consultform.Form{Values: formRequest(c)}

		// One machine per request: the meta refresh brings the visitor back to idle
		submitter := consultform.NewSubmitter(sender, consultform.NewMachine(0, nil))
		err := submitter.Submit(c.Request().Context(), form)

		status := http.StatusOK
		var validationErrs consultform.ValidationErrors
		var relayErr *relayError
		switch {
		case err == nil:
		case errors.As(err, &validationErrs):
			status = http.StatusUnprocessableEntity
		case errors.As(err, &relayErr):
			status = relayErr.status
		default:
			status = http.StatusInternalServerError
		}

		view := landingView(c, cfg, form)
		if form.State == consultform.StateSuccess || form.State == consultform.StateError {
			view.RefreshAfter = int(consultform.ResetDelay.Seconds())
		}
		return render(c, status, pages.Landing(view))
	}
}

// formRequest reads the posted fields. Checkbox values arrive as "on".
func formRequest(c echo.Context) models.ConsultationRequest {
	return models.ConsultationRequest{
		Name:           c.FormValue("name"),
		Phone:          c.FormValue("phone"),
		Message:        c.FormValue("message"),
		PrivacyConsent: parseConsent(c.FormValue("privacy")),
	}
}

func parseConsent(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
