package getEvent

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventpass/internal/http-server/handlers/event/getEvent/mocks"
	"eventpass/internal/lib/logger/handlers/slogdiscard"
	"eventpass/internal/models"
	"eventpass/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	event := &models.Event{
		ID:    7,
		Slug:  "gophercon-2026",
		Name:  "GopherCon 2026",
		Date:  time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:  "18:30",
		Place: "Paris",
	}
	tickets := []models.Ticket{
		{ID: 1, RegistrantID: 42, EventID: 7, Token: "9b2df6a1-8f6e-4a5e-b7d3-2b1f0c9d8e7f", Status: models.TicketStatusValid},
	}

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(m *mocks.EventGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:    "Success",
			eventID: "7",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEventWithTickets", 7).Return(event, tickets, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"slug":"gophercon-2026"`)
				assert.Contains(t, body, `"qr_token":"9b2df6a1-8f6e-4a5e-b7d3-2b1f0c9d8e7f"`)
			},
		},
		{
			name:           "Invalid event ID format",
			eventID:        "seven",
			mockSetup:      func(m *mocks.EventGetter) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "invalid event id format")
			},
		},
		{
			name:    "Event not found",
			eventID: "7",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEventWithTickets", 7).Return(nil, nil, storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "event not found")
			},
		},
		{
			name:    "Internal server error",
			eventID: "7",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEventWithTickets", 7).Return(nil, nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "failed to get event information")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			req, err := http.NewRequest("GET", "/events/"+tc.eventID, nil)
			require.NoError(t, err)

			router := chi.NewRouter()
			router.Get("/events/{id}", handler)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			tc.checkBody(t, rr.Body.String())
		})
	}
}
