// Package storage defines the error taxonomy shared by all ticket ledger
// implementations. Validation rejections (used/cancelled tokens) are sentinel
// errors at this level; the validation service turns them into result values.
package storage

import "errors"

var (
	ErrRegistrantNotFound = errors.New("registrant not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrCapacityExceeded   = errors.New("event capacity exceeded")
	ErrInvalidTransition  = errors.New("invalid ticket status transition")
	ErrTicketUsed         = errors.New("ticket already used")
	ErrTicketCancelled    = errors.New("ticket cancelled")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSlugTaken          = errors.New("event slug already taken")
)
