package models

// EventDraft is the form-local, transient shape of an event before it is
// resolved into absolute instants. Date and Clock use the HTML input
// formats (YYYY-MM-DD, HH:MM). Episodes is offered on the create path
// only; edits always update a single event.
type EventDraft struct {
	ID          int64  `form:"-"`
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
	Clock       string `form:"time" validate:"required,datetime=15:04"`
	Duration    int    `form:"duration" validate:"required,min=1"`
	Episodes    int    `form:"episodes" validate:"omitempty,min=1"`
}

// Normalize applies the draft defaults: a missing episode count means a
// single event.
func (d *EventDraft) Normalize() {
	if d.Episodes < 1 {
		d.Episodes = 1
	}
}

// FieldError describes a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an ordered list of form validation failures.
type FieldErrors []FieldError

// Has reports whether the named field failed validation.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Message returns the message for the named field, or empty.
func (fe FieldErrors) Message(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}
