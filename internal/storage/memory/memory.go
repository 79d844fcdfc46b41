// Package memory is an in-process ticket ledger with the same surface as the
// postgres store. It backs the tests and the local environment; all invariant
// checks (unique email/slug/token, capacity, status transitions) hold under a
// single mutex, so the read-check-write sequences are atomic.
package memory

import (
	"eventpass/internal/clock"
	"eventpass/internal/models"
	"eventpass/internal/storage"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Storage struct {
	mu    sync.Mutex
	clock clock.Clock

	registrants map[int]models.Registrant
	emails      map[string]int
	events      map[int]models.Event
	slugs       map[string]int
	tickets     map[int]models.Ticket
	tokens      map[string]int

	nextRegistrantID int
	nextEventID      int
	nextTicketID     int
}

func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:            clk,
		registrants:      make(map[int]models.Registrant),
		emails:           make(map[string]int),
		events:           make(map[int]models.Event),
		slugs:            make(map[string]int),
		tickets:          make(map[int]models.Ticket),
		tokens:           make(map[string]int),
		nextRegistrantID: 1,
		nextEventID:      1,
		nextTicketID:     1,
	}
}

// Close exists so the memory store can stand in for the postgres one behind
// the same storage surface. There is nothing to release.
func (s *Storage) Close() error {
	return nil
}

func (s *Storage) CreateRegistrant(reg models.Registrant) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[reg.Email]; taken {
		return 0, storage.ErrEmailTaken
	}

	reg.ID = s.nextRegistrantID
	s.nextRegistrantID++
	reg.CreatedAt = s.clock.Now()

	s.registrants[reg.ID] = reg
	s.emails[reg.Email] = reg.ID

	return reg.ID, nil
}

func (s *Storage) GetRegistrant(id int) (*models.Registrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.registrants[id]
	if !ok {
		return nil, storage.ErrRegistrantNotFound
	}

	return &reg, nil
}

func (s *Storage) CreateEvent(event models.Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.slugs[event.Slug]; taken {
		return 0, storage.ErrSlugTaken
	}

	event.ID = s.nextEventID
	s.nextEventID++
	event.CreatedAt = s.clock.Now()
	event.ActiveTickets = 0

	if event.ParticipantsLimit != nil {
		limit := *event.ParticipantsLimit
		event.ParticipantsLimit = &limit
	}

	s.events[event.ID] = event
	s.slugs[event.Slug] = event.ID

	return event.ID, nil
}

func (s *Storage) GetEvent(id int) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getEventLocked(id)
}

func (s *Storage) GetAllEvents() ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.Event, 0, len(s.events))
	for id := range s.events {
		event, _ := s.getEventLocked(id)
		events = append(events, *event)
	}

	slices.SortFunc(events, func(a, b models.Event) int {
		if !a.Date.Equal(b.Date) {
			return a.Date.Compare(b.Date)
		}
		return a.ID - b.ID
	})

	return events, nil
}

func (s *Storage) GetEventWithTickets(eventID int) (*models.Event, []models.Ticket, error) {
	event, err := s.GetEvent(eventID)
	if err != nil {
		return nil, nil, err
	}

	var tickets []models.Ticket
	for ticket, err := range s.TicketsByEvent(eventID) {
		if err != nil {
			return nil, nil, err
		}
		tickets = append(tickets, ticket)
	}

	return event, tickets, nil
}

func (s *Storage) IssueTicket(registrantID, eventID int) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.registrants[registrantID]; !ok {
		return models.Ticket{}, storage.ErrRegistrantNotFound
	}

	event, ok := s.events[eventID]
	if !ok {
		return models.Ticket{}, storage.ErrEventNotFound
	}

	if event.ParticipantsLimit != nil && s.activeTicketsLocked(eventID) >= *event.ParticipantsLimit {
		return models.Ticket{}, storage.ErrCapacityExceeded
	}

	token := uuid.NewString()
	for {
		if _, taken := s.tokens[token]; !taken {
			break
		}
		token = uuid.NewString()
	}

	ticket := models.Ticket{
		ID:           s.nextTicketID,
		RegistrantID: registrantID,
		EventID:      eventID,
		Token:        token,
		Status:       models.TicketStatusValid,
		CreatedAt:    s.clock.Now(),
	}
	s.nextTicketID++

	s.tickets[ticket.ID] = ticket
	s.tokens[token] = ticket.ID

	return ticket, nil
}

func (s *Storage) TicketByToken(token string) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.tokens[token]
	if !ok {
		return nil, storage.ErrTicketNotFound
	}

	ticket := s.copyTicketLocked(id)

	return &ticket, nil
}

func (s *Storage) RedeemTicket(token string, now time.Time) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.tokens[token]
	if !ok {
		return models.Ticket{}, storage.ErrTicketNotFound
	}

	ticket := s.tickets[id]

	switch ticket.Status {
	case models.TicketStatusUsed:
		return s.copyTicketLocked(id), storage.ErrTicketUsed
	case models.TicketStatusCancelled:
		return s.copyTicketLocked(id), storage.ErrTicketCancelled
	}

	scannedAt := now
	ticket.Status = models.TicketStatusUsed
	ticket.ScannedAt = &scannedAt
	s.tickets[id] = ticket

	return s.copyTicketLocked(id), nil
}

func (s *Storage) CancelTicket(ticketID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[ticketID]
	if !ok {
		return storage.ErrTicketNotFound
	}

	if ticket.Status != models.TicketStatusValid {
		return storage.ErrInvalidTransition
	}

	ticket.Status = models.TicketStatusCancelled
	s.tickets[ticketID] = ticket

	return nil
}

// TicketsByEvent returns a lazy, restartable sequence over the event's
// tickets; every range takes a fresh snapshot under the lock.
func (s *Storage) TicketsByEvent(eventID int) iter.Seq2[models.Ticket, error] {
	return func(yield func(models.Ticket, error) bool) {
		s.mu.Lock()
		var tickets []models.Ticket
		for id, ticket := range s.tickets {
			if ticket.EventID == eventID {
				tickets = append(tickets, s.copyTicketLocked(id))
			}
		}
		s.mu.Unlock()

		slices.SortFunc(tickets, func(a, b models.Ticket) int {
			return a.ID - b.ID
		})

		for _, ticket := range tickets {
			if !yield(ticket, nil) {
				return
			}
		}
	}
}

func (s *Storage) getEventLocked(id int) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	event.ActiveTickets = s.activeTicketsLocked(id)

	if event.ParticipantsLimit != nil {
		limit := *event.ParticipantsLimit
		event.ParticipantsLimit = &limit
	}

	return &event, nil
}

func (s *Storage) activeTicketsLocked(eventID int) int {
	active := 0
	for _, ticket := range s.tickets {
		if ticket.EventID == eventID && ticket.Status != models.TicketStatusCancelled {
			active++
		}
	}
	return active
}

// copyTicketLocked returns a detached copy so callers never hold a pointer
// into ledger state.
func (s *Storage) copyTicketLocked(id int) models.Ticket {
	ticket := s.tickets[id]
	if ticket.ScannedAt != nil {
		scannedAt := *ticket.ScannedAt
		ticket.ScannedAt = &scannedAt
	}
	return ticket
}
