// Package consultform holds the client side of the consultation contract:
// field validation, the payload sent to the relay, and the
// idle/loading/success/error state machine around a submission.
package consultform

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"didimdol_landing_go/models"
	"didimdol_landing_go/services/i18n"

	"github.com/go-playground/validator/v10"
)

// PhonePattern accepts Korean mobile numbers such as 010-1234-5678 or 01012345678
const PhonePattern = `^01[016789]-?\d{3,4}-?\d{4}$`

var phoneRegex = regexp.MustCompile(PhonePattern)

// Field names used as keys in ValidationErrors and as form input names
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldMessage = "message"
	FieldPrivacy = "privacy"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("krmobile", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	return v
}

// ValidPhone reports whether phone is a Korean mobile number
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidationErrors maps a field name to its user-facing message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for _, f := range []string{FieldName, FieldPhone, FieldMessage, FieldPrivacy} {
		if _, ok := v[f]; ok {
			fields = append(fields, f)
		}
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Has reports whether field failed validation
func (v ValidationErrors) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Normalize trims the text fields the way the browser form does before validating
func Normalize(req models.ConsultationRequest) models.ConsultationRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	return req
}

// Validate checks req against the form schema. Messages are localized
// with the locale carried by ctx. It returns nil when req is valid.
func Validate(ctx context.Context, req models.ConsultationRequest) ValidationErrors {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{FieldName: err.Error()}
	}

	out := make(ValidationErrors)
	for _, fe := range fieldErrs {
		switch fe.StructField() {
		case "Name":
			out[FieldName] = i18n.T(ctx, "validation.name_required")
		case "Phone":
			if fe.Tag() == "required" {
				out[FieldPhone] = i18n.T(ctx, "validation.phone_required")
			} else {
				out[FieldPhone] = i18n.T(ctx, "validation.phone_format")
			}
		case "PrivacyConsent":
			out[FieldPrivacy] = i18n.T(ctx, "validation.privacy_required")
		}
	}
	return out
}

// Payload builds the body sent to the relay. Only name, phone and message
// are copied; the consent flag stays on the client.
func Payload(req models.ConsultationRequest) models.ConsultationPayload {
	return models.ConsultationPayload{
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
	}
}
