package models

import "time"

type TicketStatus string

const (
	TicketStatusValid     TicketStatus = "valid"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusCancelled TicketStatus = "cancelled"
)

type Ticket struct {
	ID           int          `json:"id"`
	RegistrantID int          `json:"registrant_id"`
	EventID      int          `json:"event_id"`
	// Token is the QR payload. It must stay globally unique and unguessable.
	Token     string       `json:"qr_token"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	// ScannedAt is set exactly once, on the valid -> used transition.
	ScannedAt *time.Time `json:"scanned_at,omitempty"`
}
