package postgres

import (
	"database/sql"
	"errors"
	"eventpass/internal/config"
	"eventpass/internal/models"
	"eventpass/internal/storage"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) CreateRegistrant(reg models.Registrant) (int, error) {
	query := `
		INSERT INTO registrants (first_name, last_name, email, phone_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int
	err := s.DB.QueryRow(query, reg.FirstName, reg.LastName, reg.Email, reg.Phone).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "registrants_email_key") {
			return 0, storage.ErrEmailTaken
		}
		return 0, fmt.Errorf("failed to create registrant: %w", err)
	}

	return id, nil
}

func (s *Storage) GetRegistrant(id int) (*models.Registrant, error) {
	query := `
		SELECT id, first_name, last_name, email, phone_number, created_at
		FROM registrants
		WHERE id = $1`

	var reg models.Registrant
	err := s.DB.QueryRow(query, id).Scan(
		&reg.ID,
		&reg.FirstName,
		&reg.LastName,
		&reg.Email,
		&reg.Phone,
		&reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRegistrantNotFound
		}
		return nil, fmt.Errorf("failed to get registrant: %w", err)
	}

	return &reg, nil
}

func (s *Storage) CreateEvent(event models.Event) (int, error) {
	query := `
		INSERT INTO events (slug, name, description, date, time, place, participants_limit)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id`

	var limit sql.NullInt64
	if event.ParticipantsLimit != nil {
		limit = sql.NullInt64{Int64: int64(*event.ParticipantsLimit), Valid: true}
	}

	var id int
	err := s.DB.QueryRow(query,
		event.Slug,
		event.Name,
		event.Description,
		event.Date,
		event.Time,
		event.Place,
		limit,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "events_slug_key") {
			return 0, storage.ErrSlugTaken
		}
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	return id, nil
}

func (s *Storage) GetEvent(id int) (*models.Event, error) {
	query := `
		SELECT e.id, e.slug, e.name, COALESCE(e.description, ''), e.date, e.time, e.place,
		       e.participants_limit, e.created_at,
		       COUNT(t.id) FILTER (WHERE t.status <> 'cancelled')
		FROM events e
		LEFT JOIN tickets t ON e.id = t.event_id
		WHERE e.id = $1
		GROUP BY e.id`

	event, err := scanEvent(s.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (s *Storage) GetAllEvents() ([]models.Event, error) {
	query := `
		SELECT e.id, e.slug, e.name, COALESCE(e.description, ''), e.date, e.time, e.place,
		       e.participants_limit, e.created_at,
		       COUNT(t.id) FILTER (WHERE t.status <> 'cancelled')
		FROM events e
		LEFT JOIN tickets t ON e.id = t.event_id
		GROUP BY e.id
		ORDER BY e.date ASC, e.time ASC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

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

// IssueTicket creates a valid ticket with a fresh token. The event row is
// locked for the duration of the transaction so the capacity check and the
// insert cannot race with a concurrent issuance.
func (s *Storage) IssueTicket(registrantID, eventID int) (models.Ticket, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var registrantExists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM registrants WHERE id = $1)`, registrantID).
		Scan(&registrantExists)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("failed to check registrant: %w", err)
	}
	if !registrantExists {
		return models.Ticket{}, storage.ErrRegistrantNotFound
	}

	var limit sql.NullInt64
	err = tx.QueryRow(`SELECT participants_limit FROM events WHERE id = $1 FOR UPDATE`, eventID).
		Scan(&limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, storage.ErrEventNotFound
		}
		return models.Ticket{}, fmt.Errorf("failed to get event: %w", err)
	}

	if limit.Valid {
		var active int
		err = tx.QueryRow(
			`SELECT COUNT(*) FROM tickets WHERE event_id = $1 AND status <> 'cancelled'`,
			eventID,
		).Scan(&active)
		if err != nil {
			return models.Ticket{}, fmt.Errorf("failed to count active tickets: %w", err)
		}

		if active >= int(limit.Int64) {
			return models.Ticket{}, storage.ErrCapacityExceeded
		}
	}

	ticket := models.Ticket{
		RegistrantID: registrantID,
		EventID:      eventID,
		Token:        uuid.NewString(),
		Status:       models.TicketStatusValid,
	}

	insertQuery := `
		INSERT INTO tickets (registrant_id, event_id, qr_token, status)
		VALUES ($1, $2, $3, 'valid')
		RETURNING id, created_at`

	err = tx.QueryRow(insertQuery, registrantID, eventID, ticket.Token).
		Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.Ticket{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ticket, nil
}

func (s *Storage) TicketByToken(token string) (*models.Ticket, error) {
	query := `
		SELECT id, registrant_id, event_id, qr_token, status, created_at, scanned_at
		FROM tickets
		WHERE qr_token = $1`

	ticket, err := scanTicket(s.DB.QueryRow(query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return ticket, nil
}

// RedeemTicket performs the valid -> used transition. The ticket row is locked
// so concurrent redeems of the same token serialize: exactly one caller sees
// status=valid, the rest get ErrTicketUsed with the original scan time.
func (s *Storage) RedeemTicket(token string, now time.Time) (models.Ticket, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, registrant_id, event_id, qr_token, status, created_at, scanned_at
		FROM tickets
		WHERE qr_token = $1
		FOR UPDATE`

	ticket, err := scanTicket(tx.QueryRow(query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, storage.ErrTicketNotFound
		}
		return models.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}

	switch ticket.Status {
	case models.TicketStatusUsed:
		return *ticket, storage.ErrTicketUsed
	case models.TicketStatusCancelled:
		return *ticket, storage.ErrTicketCancelled
	}

	_, err = tx.Exec(`UPDATE tickets SET status = 'used', scanned_at = $2 WHERE id = $1`,
		ticket.ID, now)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("failed to redeem ticket: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.Ticket{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	ticket.Status = models.TicketStatusUsed
	ticket.ScannedAt = &now

	return *ticket, nil
}

func (s *Storage) CancelTicket(ticketID int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.TicketStatus
	err = tx.QueryRow(`SELECT status FROM tickets WHERE id = $1 FOR UPDATE`, ticketID).
		Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrTicketNotFound
		}
		return fmt.Errorf("failed to get ticket: %w", err)
	}

	if status != models.TicketStatusValid {
		return storage.ErrInvalidTransition
	}

	_, err = tx.Exec(`UPDATE tickets SET status = 'cancelled' WHERE id = $1`, ticketID)
	if err != nil {
		return fmt.Errorf("failed to cancel ticket: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// TicketsByEvent returns a lazy sequence over the event's tickets. Every range
// over the sequence runs a fresh query, so it is restartable.
func (s *Storage) TicketsByEvent(eventID int) iter.Seq2[models.Ticket, error] {
	query := `
		SELECT id, registrant_id, event_id, qr_token, status, created_at, scanned_at
		FROM tickets
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC`

	return func(yield func(models.Ticket, error) bool) {
		rows, err := s.DB.Query(query, eventID)
		if err != nil {
			yield(models.Ticket{}, fmt.Errorf("failed to get tickets: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			ticket, err := scanTicket(rows)
			if err != nil {
				yield(models.Ticket{}, fmt.Errorf("failed to scan ticket: %w", err))
				return
			}
			if !yield(*ticket, nil) {
				return
			}
		}

		if err = rows.Err(); err != nil {
			yield(models.Ticket{}, fmt.Errorf("error iterating tickets: %w", err))
		}
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	var limit sql.NullInt64

	err := row.Scan(
		&event.ID,
		&event.Slug,
		&event.Name,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.Place,
		&limit,
		&event.CreatedAt,
		&event.ActiveTickets,
	)
	if err != nil {
		return nil, err
	}

	if limit.Valid {
		l := int(limit.Int64)
		event.ParticipantsLimit = &l
	}

	return &event, nil
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var ticket models.Ticket
	var scannedAt sql.NullTime

	err := row.Scan(
		&ticket.ID,
		&ticket.RegistrantID,
		&ticket.EventID,
		&ticket.Token,
		&ticket.Status,
		&ticket.CreatedAt,
		&scannedAt,
	)
	if err != nil {
		return nil, err
	}

	if scannedAt.Valid {
		t := scannedAt.Time
		ticket.ScannedAt = &t
	}

	return &ticket, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}
