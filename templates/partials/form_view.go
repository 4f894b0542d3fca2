package partials

import (
	"context"

	"didimdol_landing_go/consultform"
	"didimdol_landing_go/services/i18n"
)

// FormView is one rendering of the consultation form
type FormView struct {
	Form      *consultform.Form
	CSRFToken string
	// Action receives the plain form post when scripts are off
	Action string
	// Endpoint is the JSON relay the page script posts to
	Endpoint   string
	ResetDelay int // milliseconds
}

// NewFormView returns an idle, empty form view
func NewFormView(csrfToken string) FormView {
	return FormView{
		Form:       &consultform.Form{State: consultform.StateIdle},
		CSRFToken:  csrfToken,
		Action:     "/consultation",
		Endpoint:   "/api/consultation",
		ResetDelay: int(consultform.ResetDelay.Milliseconds()),
	}
}

func (v FormView) form() *consultform.Form {
	if v.Form == nil {
		return &consultform.Form{}
	}
	return v.Form
}

// scriptMessages are the strings the page script needs to mirror server rendering
func scriptMessages(ctx context.Context) map[string]string {
	return map[string]string{
		"nameRequired":    i18n.T(ctx, "validation.name_required"),
		"phoneRequired":   i18n.T(ctx, "validation.phone_required"),
		"phoneFormat":     i18n.T(ctx, "validation.phone_format"),
		"privacyRequired": i18n.T(ctx, "validation.privacy_required"),
		"submit":          i18n.T(ctx, "form.submit"),
		"submitting":      i18n.T(ctx, "form.submitting"),
	}
}
