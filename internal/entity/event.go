package entity

import "time"

const (
	EventLeadCreated    = "lead.created"
	EventLeadUpdated    = "lead.updated"
	EventBookingCreated = "booking.created"
)

// Event is the notification payload published after a capture.
type Event struct {
	Type       string    `json:"type"`
	LeadID     string    `json:"lead_id,omitempty"`
	BookingID  string    `json:"booking_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	Source     string    `json:"source,omitempty"`
	Date       string    `json:"date,omitempty"`
	Time       string    `json:"time,omitempty"`
	Message    string    `json:"message,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
