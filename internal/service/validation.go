package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mpadjest/bingeplan-web/internal/models"
)

// fieldErrors translates validator failures into the normalized field
// error list rendered next to form inputs.
func fieldErrors(err error) models.FieldErrors {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.FieldErrors{{Field: "", Message: "invalid input"}}
	}

	out := make(models.FieldErrors, 0, len(verrs))
	for _, ve := range verrs {
		out = append(out, models.FieldError{
			Field:   fieldName(ve),
			Message: fieldMessage(ve),
		})
	}
	return out
}

func fieldName(ve validator.FieldError) string {
	switch ve.Field() {
	case "Title":
		return "title"
	case "Description":
		return "description"
	case "Date":
		return "date"
	case "Clock":
		return "time"
	case "Duration":
		return "duration"
	case "Episodes":
		return "episodes"
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "GoogleCalendarID":
		return "google_calendar_id"
	default:
		return ve.Field()
	}
}

func fieldMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if ve.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", ve.Param())
		}
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "datetime":
		return "invalid format"
	default:
		return "invalid value"
	}
}
