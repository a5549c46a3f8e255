package models

import "time"

// Flash is a one-shot notification rendered on the next page view.
type Flash struct {
	Level   string `json:"level"` // "success", "error", "warning", "info"
	Message string `json:"message"`
}

// Session is the server-side state bound to one browser. The upstream
// bearer token never leaves the server; the browser only carries the
// session id cookie.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	// LastEvents is the last successfully fetched event list, served when
	// a refresh against the upstream fails (stale-but-visible).
	LastEvents []Event `json:"last_events,omitempty"`
}
