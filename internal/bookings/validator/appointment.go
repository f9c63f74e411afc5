package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"skincare/pkg/logger"
	"skincare/pkg/model"
	"skincare/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details flattens the errors into field -> message for API responses.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type contextKey struct{}

// bookingScope is what the context-aware tags validate against.
type bookingScope struct {
	doctor *model.Doctor
	today  string
}

type AppointmentValidator struct {
	validate *validator.Validate
	location *time.Location
	logger   *logger.Logger
}

func NewAppointmentValidator(location *time.Location, log *logger.Logger) *AppointmentValidator {
	if location == nil {
		location = time.UTC
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	av := &AppointmentValidator{
		validate: v,
		location: location,
		logger:   log,
	}

	if err := v.RegisterValidationCtx("booking_date", av.validateBookingDate); err != nil {
		log.Fatal("Failed to register 'booking_date' validator", "error", err)
	}
	if err := v.RegisterValidationCtx("available_slot", validateAvailableSlot); err != nil {
		log.Fatal("Failed to register 'available_slot' validator", "error", err)
	}
	if err := v.RegisterValidation("service_label", validateServiceLabel); err != nil {
		log.Fatal("Failed to register 'service_label' validator", "error", err)
	}

	log.Debug("Appointment validator initialized", "time_zone", location.String())
	return av
}

// Validate checks req against the selected doctor's slots and the clinic's
// current date at now. Free-text fields are checked in normalized form, so a
// name of only spaces counts as missing; req itself is never changed.
func (v *AppointmentValidator) Validate(ctx context.Context, doctor *model.Doctor, req model.AppointmentRequest, now time.Time) error {
	if doctor == nil {
		return ValidationErrors{{Field: "doctor_id", Message: "doctor must be selected"}}
	}
	scope := bookingScope{
		doctor: doctor,
		today:  now.In(v.location).Format(model.DateLayout),
	}
	ctx = context.WithValue(ctx, contextKey{}, scope)

	normalized := Normalize(req)
	if err := v.validate.StructCtx(ctx, &normalized); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs, doctor)
		}
		return err
	}
	return nil
}

// Normalize returns a copy of req with the free-text patient fields cleaned
// up. Date, time and service are matched exactly and stay as typed.
func Normalize(req model.AppointmentRequest) model.AppointmentRequest {
	req.PatientName = sanitizer.NormalizeName(req.PatientName)
	req.PatientEmail = sanitizer.NormalizeEmail(req.PatientEmail)
	req.PatientPhone = sanitizer.NormalizePhone(req.PatientPhone, sanitizer.DefaultPhoneRegion)
	req.Notes = sanitizer.NormalizeNotes(req.Notes)
	return req
}

func (v *AppointmentValidator) validateBookingDate(ctx context.Context, fl validator.FieldLevel) bool {
	scope, ok := ctx.Value(contextKey{}).(bookingScope)
	if !ok {
		return false
	}
	raw := fl.Field().String()
	if _, err := time.ParseInLocation(model.DateLayout, raw, v.location); err != nil {
		return false
	}
	// YYYY-MM-DD compares chronologically as a string.
	return raw >= scope.today
}

func validateAvailableSlot(ctx context.Context, fl validator.FieldLevel) bool {
	scope, ok := ctx.Value(contextKey{}).(bookingScope)
	if !ok || scope.doctor == nil {
		return false
	}
	return scope.doctor.HasSlot(fl.Field().String())
}

func validateServiceLabel(fl validator.FieldLevel) bool {
	return model.IsService(fl.Field().String())
}

func (v *AppointmentValidator) translateValidationErrors(errs validator.ValidationErrors, doctor *model.Doctor) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "booking_date":
			message = fmt.Sprintf("%s must be a YYYY-MM-DD date no earlier than today", err.Field())
		case "available_slot":
			message = fmt.Sprintf("%s must be one of the doctor's available slots: %s", err.Field(), strings.Join(doctor.AvailableSlots, ", "))
		case "service_label":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), strings.Join(model.Services(), ", "))
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
