// Package validation implements the gate check-in: a scanned token either
// redeems its ticket or is rejected for a specific, operator-visible reason.
package validation

import (
	"errors"
	"eventpass/internal/clock"
	"eventpass/internal/models"
	"eventpass/internal/storage"
	"fmt"
	"strings"
	"time"
)

type Reason string

const (
	ReasonUnknownToken Reason = "unknown_token"
	ReasonAlreadyUsed  Reason = "already_used"
	ReasonCancelled    Reason = "cancelled"
)

// Result is the tagged outcome of a validation attempt. Rejections are
// expected outcomes, not faults: each reason drives different gate UI, so the
// outcome is never collapsed into a bool or an error.
type Result struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
	// Ticket is the matched ticket, nil for unknown_token. For already_used
	// it carries the original scan time.
	Ticket *models.Ticket `json:"ticket,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketRedeemer
type TicketRedeemer interface {
	RedeemTicket(token string, now time.Time) (models.Ticket, error)
}

type Service struct {
	ledger TicketRedeemer
	clock  clock.Clock
}

func New(ledger TicketRedeemer, clk clock.Clock) *Service {
	return &Service{
		ledger: ledger,
		clock:  clk,
	}
}

// Validate redeems the token produced by the QR decoder. The input is trimmed
// of surrounding whitespace and nothing else; the lookup is exact and
// case-sensitive. A non-nil error means the ledger itself failed and the
// caller may retry; the Result is only meaningful when the error is nil.
func (s *Service) Validate(tokenString string) (Result, error) {
	token := strings.TrimSpace(tokenString)

	ticket, err := s.ledger.RedeemTicket(token, s.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTicketNotFound):
			return Result{Reason: ReasonUnknownToken}, nil
		case errors.Is(err, storage.ErrTicketUsed):
			return Result{Reason: ReasonAlreadyUsed, Ticket: &ticket}, nil
		case errors.Is(err, storage.ErrTicketCancelled):
			return Result{Reason: ReasonCancelled, Ticket: &ticket}, nil
		}
		return Result{}, fmt.Errorf("failed to redeem ticket: %w", err)
	}

	return Result{Accepted: true, Ticket: &ticket}, nil
}
