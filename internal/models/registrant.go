package models

import "time"

type Registrant struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone_number"`
	CreatedAt time.Time `json:"created_at"`
}
