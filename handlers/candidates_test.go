package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blockvote/election"
	"blockvote/models"
	"blockvote/testutil"
)

func newTestCandidateHandler(store *testutil.MemStore) *CandidateHandler {
	return NewCandidateHandler(election.NewCandidateService(store, testutil.FastRetrier()))
}

func TestRegisterCandidateEndpoint(t *testing.T) {
	tests := []struct {
		name            string
		setup           func(t *testing.T, store *testutil.MemStore)
		requestBody     models.RegisterCandidateRequest
		expectedStatus  int
		expectedSuccess bool
		messageContains string
	}{
		{
			name: "valid registration",
			requestBody: models.RegisterCandidateRequest{
				PartyName:     "Redstone Party",
				CandidateName: "Steve",
				Password:      "hunter2",
			},
			expectedStatus:  http.StatusCreated,
			expectedSuccess: true,
			messageContains: "registered successfully",
		},
		{
			name: "duplicate party",
			setup: func(t *testing.T, store *testutil.MemStore) {
				store.Seed(t, election.CandidatesDoc, []models.Candidate{
					{PartyName: "redstone party", CandidateName: "Alex"},
				})
			},
			requestBody: models.RegisterCandidateRequest{
				PartyName:     "Redstone Party",
				CandidateName: "Steve",
				Password:      "hunter2",
			},
			expectedStatus:  http.StatusConflict,
			expectedSuccess: false,
			messageContains: "already registered",
		},
		{
			name: "missing party name",
			requestBody: models.RegisterCandidateRequest{
				CandidateName: "Steve",
				Password:      "hunter2",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedSuccess: false,
		},
		{
			name: "missing password",
			requestBody: models.RegisterCandidateRequest{
				PartyName:     "Redstone Party",
				CandidateName: "Steve",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedSuccess: false,
		},
		{
			name: "retries exhausted",
			setup: func(t *testing.T, store *testutil.MemStore) {
				store.ConflictNextWrites(10)
			},
			requestBody: models.RegisterCandidateRequest{
				PartyName:     "Redstone Party",
				CandidateName: "Steve",
				Password:      "hunter2",
			},
			expectedStatus:  http.StatusServiceUnavailable,
			expectedSuccess: false,
			messageContains: "try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMemStore()
			if tt.setup != nil {
				tt.setup(t, store)
			}
			handler := newTestCandidateHandler(store)

			req := testutil.MakeRequest("POST", "/api/register-candidate", tt.requestBody, nil)
			w := httptest.NewRecorder()
			handler.Register(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			var resp models.RegisterCandidateResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Success != tt.expectedSuccess {
				t.Errorf("Expected success=%v, got %+v", tt.expectedSuccess, resp)
			}
			if tt.messageContains != "" && !strings.Contains(resp.Message, tt.messageContains) {
				t.Errorf("Expected message containing %q, got %q", tt.messageContains, resp.Message)
			}
		})
	}
}

func TestListCandidatesEndpoint(t *testing.T) {
	store := testutil.NewMemStore()
	store.Seed(t, election.CandidatesDoc, []models.Candidate{
		{PartyName: "Redstone Party", CandidateName: "Steve", Password: "hunter2"},
	})
	handler := newTestCandidateHandler(store)

	req := testutil.MakeRequest("GET", "/api/candidates", nil, nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.CandidatePublic
	testutil.AssertJSON(t, w, &resp)
	if len(resp) != 1 || resp[0].PartyName != "Redstone Party" {
		t.Errorf("Unexpected candidates: %+v", resp)
	}
}

func TestListCandidatesNeverExposesPasswords(t *testing.T) {
	store := testutil.NewMemStore()
	store.Seed(t, election.CandidatesDoc, []models.Candidate{
		{PartyName: "Redstone Party", CandidateName: "Steve", Password: "hunter2"},
	})
	handler := newTestCandidateHandler(store)

	req := testutil.MakeRequest("GET", "/api/candidates", nil, nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	body := w.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "hunter2") {
		t.Errorf("Password leaked in response: %s", body)
	}
}

func TestListCandidatesEmpty(t *testing.T) {
	store := testutil.NewMemStore()
	handler := newTestCandidateHandler(store)

	req := testutil.MakeRequest("GET", "/api/candidates", nil, nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Empty list must serialize as [], got %s", body)
	}
}
