package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffline/internal/delivery/http/helpers"
	"staffline/internal/delivery/http/middleware"
	"staffline/internal/domain"
)

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		noUserContext  bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"title":"Smith Wedding","event_date":"2025-06-01","start_time":"18:00","open_shifts":4}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "no user in context",
			body:           `{"title":"Smith Wedding"}`,
			noUserContext:  true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			noUserContext:  true, // decode fails before we check context
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "missing title",
			body:           `{}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "title is required",
		},
		{
			name:           "malformed date",
			body:           `{"title":"Gala","event_date":"06/01/2025"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "YYYY-MM-DD",
		},
		{
			name:           "malformed time",
			body:           `{"title":"Gala","start_time":"6pm"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "HH:MM",
		},
		{
			name:           "negative shifts",
			body:           `{"title":"Gala","open_shifts":-1}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "open_shifts",
		},
		{
			name:           "staff forbidden",
			body:           `{"title":"Gala"}`,
			fakeErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
		{
			name:           "service error",
			body:           `{"title":"Gala"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{createErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
			}
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error, "success response must have error nil")
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var event domain.Event
				require.NoError(t, json.Unmarshal(dataBytes, &event))
				assert.Equal(t, "ev-created", event.ID)
				assert.Equal(t, "Smith Wedding", event.Title)
				assert.Equal(t, domain.EventStatusDraft, event.Status)
				assert.Equal(t, "admin-1", fake.lastCallerID)
				return
			}
			require.NotNil(t, envelope.Error, "error response must have error set")
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	published := &domain.Event{ID: "ev-1", Title: "Gala", Status: domain.EventStatusPublished}

	tests := []struct {
		name       string
		eventID    string
		fake       *fakeEventService
		wantStatus int
	}{
		{
			name:       "success",
			eventID:    "ev-1",
			fake:       &fakeEventService{getResult: published},
			wantStatus: http.StatusOK,
		},
		{
			name:       "draft hidden from staff",
			eventID:    "ev-2",
			fake:       &fakeEventService{getErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing eventID",
			eventID:    "",
			fake:       &fakeEventService{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events/"+tt.eventID, nil)
			req.SetPathValue("eventID", tt.eventID)
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-1"))
			rr := httptest.NewRecorder()

			ctrl.GetEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ev-1", tt.fake.lastEventID)
				assert.Equal(t, "user-1", tt.fake.lastCallerID)
			}
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	t.Run("empty list is a JSON array", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{})
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "user-1"))
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
	})

	t.Run("returns events", func(t *testing.T) {
		fake := &fakeEventService{listResult: []*domain.Event{{ID: "ev-1"}, {ID: "ev-2"}}}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "user-1"))
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		items, ok := envelope.Data.([]interface{})
		require.True(t, ok, "data must be array")
		assert.Len(t, items, 2)
	})
}

func TestEventController_UpdateEvent(t *testing.T) {
	updated := &domain.Event{ID: "ev-1", Title: "Renamed", Status: domain.EventStatusDraft}

	tests := []struct {
		name           string
		body           string
		fake           *fakeEventService
		wantStatus     int
		wantBodySubstr string
		checkUpdate    func(t *testing.T, upd domain.EventUpdate)
	}{
		{
			name:       "patch title and shifts",
			body:       `{"title":"Renamed","open_shifts":6}`,
			fake:       &fakeEventService{updateRes: updated},
			wantStatus: http.StatusOK,
			checkUpdate: func(t *testing.T, upd domain.EventUpdate) {
				require.NotNil(t, upd.Title)
				assert.Equal(t, "Renamed", *upd.Title)
				require.NotNil(t, upd.OpenShifts)
				assert.Equal(t, 6, *upd.OpenShifts)
				assert.Nil(t, upd.Venue, "omitted field must stay nil")
			},
		},
		{
			name:           "empty title rejected",
			body:           `{"title":"  "}`,
			fake:           &fakeEventService{updateRes: updated},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "title",
		},
		{
			name:           "not found",
			body:           `{"title":"Renamed"}`,
			fake:           &fakeEventService{updateErr: domain.ErrNotFound},
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "not found",
		},
		{
			name:           "invalid input from service",
			body:           `{"title":"Renamed"}`,
			fake:           &fakeEventService{updateErr: fmt.Errorf("%w: end_time before start_time", domain.ErrInvalidInput)},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "end_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPatch, "http://test/events/ev-1", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("eventID", "ev-1")
			req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
			rr := httptest.NewRecorder()

			ctrl.UpdateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				if tt.checkUpdate != nil {
					tt.checkUpdate(t, tt.fake.lastUpdate)
				}
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestEventController_PublishEvent(t *testing.T) {
	tests := []struct {
		name       string
		fake       *fakeEventService
		wantStatus int
	}{
		{
			name:       "success",
			fake:       &fakeEventService{publishRes: &domain.Event{ID: "ev-1", Status: domain.EventStatusPublished}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "staff forbidden",
			fake:       &fakeEventService{publishErr: domain.ErrForbidden},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "not found",
			fake:       &fakeEventService{publishErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/events/ev-1/publish", nil)
			req.SetPathValue("eventID", "ev-1")
			req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
			rr := httptest.NewRecorder()

			ctrl.PublishEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ev-1", tt.fake.lastEventID)
				assert.Equal(t, "admin-1", tt.fake.lastCallerID)
			}
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeEventService{}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodDelete, "http://test/events/ev-1", nil)
		req.SetPathValue("eventID", "ev-1")
		req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
		rr := httptest.NewRecorder()

		ctrl.DeleteEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"deleted"`)
		assert.Equal(t, "ev-1", fake.lastEventID)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{deleteErr: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodDelete, "http://test/events/ev-9", nil)
		req.SetPathValue("eventID", "ev-9")
		req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
		rr := httptest.NewRecorder()

		ctrl.DeleteEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
