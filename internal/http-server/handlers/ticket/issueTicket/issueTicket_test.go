package issueTicket

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventpass/internal/http-server/handlers/ticket/issueTicket/mocks"
	"eventpass/internal/lib/logger/handlers/slogdiscard"
	"eventpass/internal/models"
	"eventpass/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTicketHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	issued := models.Ticket{
		ID:           1,
		RegistrantID: 42,
		EventID:      7,
		Token:        "9b2df6a1-8f6e-4a5e-b7d3-2b1f0c9d8e7f",
		Status:       models.TicketStatusValid,
	}

	testCases := []struct {
		name           string
		eventID        string
		requestBody    string
		mockSetup      func(mock *mocks.TicketIssuer)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			eventID:     "7",
			requestBody: `{"registrant_id": 42}`,
			mockSetup: func(mock *mocks.TicketIssuer) {
				mock.On("IssueTicket", 42, 7).Return(issued, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, issued.Token)
				assert.Contains(t, body, `"status":"valid"`)
			},
		},
		{
			name:           "Missing event ID",
			eventID:        "",
			requestBody:    `{"registrant_id": 42}`,
			mockSetup:      func(mock *mocks.TicketIssuer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"event id is required"}`,
		},
		{
			name:           "Invalid event ID format",
			eventID:        "seven",
			requestBody:    `{"registrant_id": 42}`,
			mockSetup:      func(mock *mocks.TicketIssuer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:           "Invalid JSON",
			eventID:        "7",
			requestBody:    `invalid json`,
			mockSetup:      func(mock *mocks.TicketIssuer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing registrant_id",
			eventID:        "7",
			requestBody:    `{}`,
			mockSetup:      func(mock *mocks.TicketIssuer) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "RegistrantId")
			},
		},
		{
			name:        "Registrant not found",
			eventID:     "7",
			requestBody: `{"registrant_id": 42}`,
			mockSetup: func(mock *mocks.TicketIssuer) {
				mock.On("IssueTicket", 42, 7).Return(models.Ticket{}, storage.ErrRegistrantNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"registrant not found"}`,
		},
		{
			name:        "Event not found",
			eventID:     "7",
			requestBody: `{"registrant_id": 42}`,
			mockSetup: func(mock *mocks.TicketIssuer) {
				mock.On("IssueTicket", 42, 7).Return(models.Ticket{}, storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:        "Capacity exceeded",
			eventID:     "7",
			requestBody: `{"registrant_id": 42}`,
			mockSetup: func(mock *mocks.TicketIssuer) {
				mock.On("IssueTicket", 42, 7).Return(models.Ticket{}, storage.ErrCapacityExceeded)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"event capacity exceeded"}`,
		},
		{
			name:        "Internal server error",
			eventID:     "7",
			requestBody: `{"registrant_id": 42}`,
			mockSetup: func(mock *mocks.TicketIssuer) {
				mock.On("IssueTicket", 42, 7).Return(models.Ticket{}, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to issue ticket"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockIssuer := mocks.NewTicketIssuer(t)
			tc.mockSetup(mockIssuer)

			handler := New(logger, mockIssuer)

			url := "/events/tickets"
			if tc.eventID != "" {
				url = "/events/" + tc.eventID + "/tickets"
			}

			req, err := http.NewRequest("POST", url, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			router := chi.NewRouter()
			router.Route("/events", func(r chi.Router) {
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/tickets", handler)
				})
				r.Post("/tickets", handler)
			})

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
