package models

// User is the upstream profile for the authenticated account.
type User struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	TotalEvents       int    `json:"total_events"`
	GoogleCalendarID  string `json:"googleCalendarId,omitempty"`
	IsGoogleConnected bool   `json:"is_google_connected"`
}

// LoginRequest carries the credentials forwarded to the upstream API.
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// RegisterRequest carries the sign-up form forwarded upstream.
type RegisterRequest struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
	Role     string `form:"role" json:"role"`
}

// ProfileUpdateRequest carries the editable profile fields.
type ProfileUpdateRequest struct {
	Name             string `form:"name" json:"name" validate:"required"`
	Email            string `form:"email" json:"email" validate:"required,email"`
	GoogleCalendarID string `form:"google_calendar_id" json:"googleCalendarId"`
}
