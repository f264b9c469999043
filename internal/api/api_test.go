package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bluereef/campaignforge/internal/models"
	"github.com/bluereef/campaignforge/internal/testutil"
)

func newTestServer() *Server {
	return NewServer(testutil.NewTestOrchestrator())
}

func decodeAPIResponse(t *testing.T, rr *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func startSession(t *testing.T, handler http.Handler) string {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 from POST /sessions, got %d", rr.Code)
	}
	resp := decodeAPIResponse(t, rr)
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result shape: %+v", resp.Result)
	}
	id, _ := result["session_id"].(string)
	if id == "" {
		t.Fatal("session_id missing from start response")
	}
	return id
}

func TestStartSessionEndpoint(t *testing.T) {
	handler := newTestServer().Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	resp := decodeAPIResponse(t, rr)
	if resp.Status != string(models.APIStatusOK) {
		t.Errorf("expected ok status, got %q", resp.Status)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET /sessions, got %d", rr.Code)
	}
}

func TestSendMessageEndpoint(t *testing.T) {
	handler := newTestServer().Handler()
	id := startSession(t, handler)

	body := bytes.NewBufferString(`{"message":"i sell bread"}`)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/messages", body))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeAPIResponse(t, rr)
	if resp.Status != string(models.APIStatusOK) {
		t.Errorf("expected ok status, got %q", resp.Status)
	}
}

func TestSendMessageValidation(t *testing.T) {
	handler := newTestServer().Handler()
	id := startSession(t, handler)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `not json`, http.StatusBadRequest},
		{"empty message", `{"message":""}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/messages", strings.NewReader(tc.body)))
			if rr.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestSendMessageUnknownSession(t *testing.T) {
	handler := newTestServer().Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sessions/nope/messages", strings.NewReader(`{"message":"hi"}`)))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rr.Code)
	}
}

func TestSessionSummaryEndpoint(t *testing.T) {
	handler := newTestServer().Handler()
	id := startSession(t, handler)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/summary", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	resp := decodeAPIResponse(t, rr)
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result shape: %+v", resp.Result)
	}
	if result["session_id"] != id {
		t.Errorf("summary session_id mismatch: %v", result["session_id"])
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/nope/summary", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rr.Code)
	}
}

func TestCampaignOutputNotReady(t *testing.T) {
	handler := newTestServer().Handler()
	id := startSession(t, handler)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/campaign", nil))
	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409 before content creation, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/nope/campaign", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rr.Code)
	}
}

func TestCloseSessionEndpoint(t *testing.T) {
	handler := newTestServer().Handler()
	id := startSession(t, handler)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rr.Code)
	}
}

func TestUnknownSessionAction(t *testing.T) {
	handler := newTestServer().Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/abc/unknown", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown action, got %d", rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer().Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
