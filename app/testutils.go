package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sushihentaime/multiblog/internal/common"
)

type testServer struct {
	*httptest.Server
}

// credentials are sent as HTTP Basic auth.
type credentials struct {
	username string
	password string
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func testConfig() *Config {
	cfg := &Config{Environment: "testing", Version: "test", TxTimeout: 5 * time.Second}
	cfg.Limiter.Enabled = false
	cfg.Limiter.RPS = 2
	cfg.Limiter.Burst = 4
	return cfg
}

// newTestApplication runs against a migrated postgres container. Blog events are
// disabled.
func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return newApplication(testConfig(), logger, db, nil), db
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

func (ts *testServer) do(t *testing.T, method, path string, creds *credentials, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if creds != nil {
		req.SetBasicAuth(creds.username, creds.password)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, nil, nil)
}

func (ts *testServer) post(t *testing.T, path string, creds *credentials, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, creds, payload)
}

func (ts *testServer) patch(t *testing.T, path string, creds *credentials, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPatch, path, creds, payload)
}

func (ts *testServer) delete(t *testing.T, path string, creds *credentials) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, creds, nil)
}

// registerUser creates a user through the API and returns its id and credentials.
func (ts *testServer) registerUser(t *testing.T, username string) (string, *credentials) {
	creds := &credentials{username: username, password: "Test_1234!"}

	status, _, body := ts.post(t, "/v1/users", nil, registerUserRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: creds.password,
	})
	if status != http.StatusCreated {
		t.Fatalf("could not register %s: %d %v", username, status, body)
	}

	return body["user"].(map[string]any)["id"].(string), creds
}

// field digs a string out of a decoded response, e.g. field(body, "blog", "id").
func field(body envelope, object, key string) string {
	m, ok := body[object].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
