package models

import "time"

// Event mirrors the upstream wire representation of a calendar entry.
// Start and End travel as RFC3339 UTC timestamps.
type Event struct {
	ID          int64     `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// EventPayload is the create/update body sent upstream. IDs are assigned
// by the upstream service, never locally.
type EventPayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// UTC normalises the payload timestamps for the wire.
func (p EventPayload) UTC() EventPayload {
	p.Start = p.Start.UTC()
	p.End = p.End.UTC()
	return p
}
