package memory

import (
	"strings"
	"sync"
	"testing"
	"time"

	"eventpass/internal/clock"
	"eventpass/internal/models"
	"eventpass/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 8, 31, 10, 2, 0, 0, time.UTC)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	return New(clock.NewFixed(testTime))
}

func seedRegistrant(t *testing.T, s *Storage) int {
	t.Helper()

	id, err := s.CreateRegistrant(models.Registrant{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+33123456789",
	})
	require.NoError(t, err)

	return id
}

func seedEvent(t *testing.T, s *Storage, limit *int) int {
	t.Helper()

	id, err := s.CreateEvent(models.Event{
		Slug:              "gophercon-2026",
		Name:              "GopherCon 2026",
		Date:              time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:              "18:30",
		Place:             "Paris",
		ParticipantsLimit: limit,
	})
	require.NoError(t, err)

	return id
}

func TestTokenUniqueness(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	const count = 10000

	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		ticket, err := s.IssueTicket(regID, eventID)
		require.NoError(t, err)
		require.NotEmpty(t, ticket.Token)

		_, dup := seen[ticket.Token]
		require.False(t, dup, "duplicate token %s", ticket.Token)
		seen[ticket.Token] = struct{}{}
	}
}

func TestIssueTicket(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	ticket, err := s.IssueTicket(regID, eventID)
	require.NoError(t, err)

	assert.Equal(t, models.TicketStatusValid, ticket.Status)
	assert.Nil(t, ticket.ScannedAt)
	assert.Equal(t, regID, ticket.RegistrantID)
	assert.Equal(t, eventID, ticket.EventID)
	assert.Equal(t, testTime, ticket.CreatedAt)
}

func TestIssueTicketUnknownRefs(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	_, err := s.IssueTicket(999, eventID)
	assert.ErrorIs(t, err, storage.ErrRegistrantNotFound)

	_, err = s.IssueTicket(regID, 999)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestIssueTicketCapacity(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)

	limit := 3
	eventID := seedEvent(t, s, &limit)

	for i := 0; i < limit; i++ {
		_, err := s.IssueTicket(regID, eventID)
		require.NoError(t, err)
	}

	_, err := s.IssueTicket(regID, eventID)
	assert.ErrorIs(t, err, storage.ErrCapacityExceeded)

	event, err := s.GetEvent(eventID)
	require.NoError(t, err)
	assert.Equal(t, limit, event.ActiveTickets)
}

func TestIssueTicketCapacityConcurrent(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)

	limit := 50
	eventID := seedEvent(t, s, &limit)

	const attempts = 200

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.IssueTicket(regID, eventID)
		}(i)
	}
	wg.Wait()

	issued := 0
	for _, err := range errs {
		if err == nil {
			issued++
		} else {
			assert.ErrorIs(t, err, storage.ErrCapacityExceeded)
		}
	}

	assert.Equal(t, limit, issued)

	event, err := s.GetEvent(eventID)
	require.NoError(t, err)
	assert.Equal(t, limit, event.ActiveTickets)
}

func TestCancelledTicketFreesSlot(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)

	limit := 1
	eventID := seedEvent(t, s, &limit)

	ticket, err := s.IssueTicket(regID, eventID)
	require.NoError(t, err)

	_, err = s.IssueTicket(regID, eventID)
	require.ErrorIs(t, err, storage.ErrCapacityExceeded)

	require.NoError(t, s.CancelTicket(ticket.ID))

	// cancelled tickets do not count toward the limit
	_, err = s.IssueTicket(regID, eventID)
	assert.NoError(t, err)
}

func TestCancelTicketTransitions(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	ticket, err := s.IssueTicket(regID, eventID)
	require.NoError(t, err)

	require.NoError(t, s.CancelTicket(ticket.ID))

	err = s.CancelTicket(ticket.ID)
	assert.ErrorIs(t, err, storage.ErrInvalidTransition)

	used, err := s.IssueTicket(regID, eventID)
	require.NoError(t, err)
	_, err = s.RedeemTicket(used.Token, testTime)
	require.NoError(t, err)

	err = s.CancelTicket(used.ID)
	assert.ErrorIs(t, err, storage.ErrInvalidTransition)

	err = s.CancelTicket(999)
	assert.ErrorIs(t, err, storage.ErrTicketNotFound)
}

func TestRedeemTicket(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	issued, err := s.IssueTicket(regID, eventID)
	require.NoError(t, err)

	redeemed, err := s.RedeemTicket(issued.Token, testTime)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusUsed, redeemed.Status)
	require.NotNil(t, redeemed.ScannedAt)
	assert.Equal(t, testTime, *redeemed.ScannedAt)

	// second redeem keeps the original scan time
	later := testTime.Add(5 * time.Minute)
	again, err := s.RedeemTicket(issued.Token, later)
	assert.ErrorIs(t, err, storage.ErrTicketUsed)
	require.NotNil(t, again.ScannedAt)
	assert.Equal(t, testTime, *again.ScannedAt)
}

func TestRedeemCancelledTicket(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	ticket, err := s.IssueTicket(regID, eventID)
	require.NoError(t, err)
	require.NoError(t, s.CancelTicket(ticket.ID))

	got, err := s.RedeemTicket(ticket.Token, testTime)
	assert.ErrorIs(t, err, storage.ErrTicketCancelled)
	assert.Nil(t, got.ScannedAt)
}

func TestRedeemUnknownToken(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	_, err := s.RedeemTicket("never-issued", testTime)
	assert.ErrorIs(t, err, storage.ErrTicketNotFound)
}

func TestTicketByTokenExactMatch(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	ticket, err := s.IssueTicket(regID, eventID)
	require.NoError(t, err)

	found, err := s.TicketByToken(ticket.Token)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, found.ID)

	// lookup is case-sensitive
	_, err = s.TicketByToken(strings.ToUpper(ticket.Token))
	assert.ErrorIs(t, err, storage.ErrTicketNotFound)
}

func TestTicketsByEventRestartable(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	var issued []int
	for i := 0; i < 3; i++ {
		ticket, err := s.IssueTicket(regID, eventID)
		require.NoError(t, err)
		issued = append(issued, ticket.ID)
	}

	collect := func() []int {
		var ids []int
		for ticket, err := range s.TicketsByEvent(eventID) {
			require.NoError(t, err)
			ids = append(ids, ticket.ID)
		}
		return ids
	}

	first := collect()
	second := collect()

	assert.Equal(t, issued, first)
	assert.Equal(t, first, second)

	// early break must not poison later traversals
	for range s.TicketsByEvent(eventID) {
		break
	}
	assert.Equal(t, issued, collect())
}

func TestUniqueEmailAndSlug(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	seedRegistrant(t, s)
	seedEvent(t, s, nil)

	_, err := s.CreateRegistrant(models.Registrant{
		FirstName: "Another",
		LastName:  "Ada",
		Email:     "ada@example.com",
		Phone:     "+442012345678",
	})
	assert.ErrorIs(t, err, storage.ErrEmailTaken)

	_, err = s.CreateEvent(models.Event{
		Slug:  "gophercon-2026",
		Name:  "Copycat",
		Date:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Time:  "09:00",
		Place: "Lyon",
	})
	assert.ErrorIs(t, err, storage.ErrSlugTaken)
}

func TestGetEventWithTickets(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	ticket, err := s.IssueTicket(regID, eventID)
	require.NoError(t, err)

	event, tickets, err := s.GetEventWithTickets(eventID)
	require.NoError(t, err)
	assert.Equal(t, eventID, event.ID)
	require.Len(t, tickets, 1)
	assert.Equal(t, ticket.ID, tickets[0].ID)

	_, _, err = s.GetEventWithTickets(999)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestCloseKeepsStoreUsable(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	regID := seedRegistrant(t, s)
	eventID := seedEvent(t, s, nil)

	require.NoError(t, s.Close())

	// there is no connection to tear down, so the ledger stays readable
	_, err := s.IssueTicket(regID, eventID)
	assert.NoError(t, err)
}
