package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"uchet/internal/catalog"
	"uchet/internal/log"
	"uchet/internal/services"
	"uchet/internal/storage"
)

const testToken = "secret-token"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "uchet.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	logger := log.New(log.DefaultConfig())
	ledger := services.NewLedger(repo, catalog.NewStore(repo), nil, nil, "uah", logger)
	return NewServer(":0", ledger, testToken, logger)
}

func postCommand(t *testing.T, s *Server, token, command string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/command",
		strings.NewReader(`{"command":`+jsonString(command)+`}`))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func reply(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode reply: %v (%s)", err, rec.Body.String())
	}
	return resp.Reply
}

func TestCommandRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := postCommand(t, s, "", "bl 100")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d", rec.Code)
	}
	rec = postCommand(t, s, "wrong", "bl 100")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status with wrong token = %d", rec.Code)
	}
	rec = postCommand(t, s, testToken, "bl 100")
	if rec.Code != http.StatusOK {
		t.Fatalf("status with token = %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestCommandRoundTrip(t *testing.T) {
	s := newTestServer(t)

	if rec := postCommand(t, s, testToken, "bl 1000"); rec.Code != http.StatusOK {
		t.Fatalf("set balance: %d (%s)", rec.Code, rec.Body.String())
	}
	rec := postCommand(t, s, testToken, "250 taxi to airport")
	if rec.Code != http.StatusOK {
		t.Fatalf("expense: %d (%s)", rec.Code, rec.Body.String())
	}
	got := reply(t, rec)
	if !strings.Contains(got, "#1") || !strings.Contains(got, "Balance: 750") {
		t.Errorf("reply = %q", got)
	}
}

func TestInvalidCommandIsUnprocessable(t *testing.T) {
	s := newTestServer(t)

	rec := postCommand(t, s, testToken, "250 250")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := reply(t, rec); !strings.Contains(got, "Invalid expense") {
		t.Errorf("reply = %q", got)
	}
}

func TestUnrecognizedCommandIsOK(t *testing.T) {
	s := newTestServer(t)

	rec := postCommand(t, s, testToken, "hello there")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := reply(t, rec); got != "Unrecognized command" {
		t.Errorf("reply = %q", got)
	}
}

func TestEmptyCommandIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	rec := postCommand(t, s, testToken, "   ")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)

	for _, line := range []string{"100 food", "250 taxi"} {
		if rec := postCommand(t, s, testToken, line); rec.Code != http.StatusOK {
			t.Fatalf("expense %q: %d", line, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Total int64 `json:"total"`
		Count int   `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 350 || resp.Count != 2 {
		t.Errorf("stats = %+v", resp)
	}
}

func TestStatsUnknownPeriodIsNotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/stats?period=1999.01", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStatsBadPeriodIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/stats?period=2025.13", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHealthzSkipsAuth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
