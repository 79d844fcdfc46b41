package models

import "time"

type Event struct {
	ID          int       `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Place       string    `json:"place"`
	// nil means unlimited
	ParticipantsLimit *int      `json:"participants_limit,omitempty"`
	ActiveTickets     int       `json:"active_tickets"`
	CreatedAt         time.Time `json:"created_at"`
}
