package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/crucial707/staybook/internal/auth"
	"github.com/crucial707/staybook/internal/config"
)

var listingCols = []string{"id", "owner_id", "title", "address", "photos", "description", "perks", "extra_info", "check_in", "check_out", "max_guests", "price"}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		JWTSecret:      "test-secret-for-integration",
		TokenTTLHours:  1,
		BcryptCost:     4,
		UploadDir:      t.TempDir(),
		UploadMaxFiles: 100,
		UploadMaxBytes: 1 << 20,
	}
}

func cookieClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url string, v any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(v)
	resp, err := c.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

// TestAPI_LoginThenCreateListing is an integration test: it builds the full router with a
// sqlmock-backed DB, logs in to get the token cookie, then creates a listing with it.
func TestAPI_LoginThenCreateListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := auth.NewPasswordHasher(4).Hash("secret")
	mock.ExpectQuery(`SELECT id, name, email, password_hash`).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).AddRow(5, "Ann", "ann@example.com", hash))
	mock.ExpectQuery(`INSERT INTO listings`).
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow(3, 5, "Cabin", "1 Lake Rd", "{}", "Quiet", "{}", "", 14, 11, 4, 120.0))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(5, "create", "listing", 3, "Cabin").
		WillReturnResult(sqlmock.NewResult(1, 1))

	srv := httptest.NewServer(newRouter(db, testConfig(t)))
	defer srv.Close()
	client := cookieClient(t)

	// 1) Login
	loginResp := postJSON(t, client, srv.URL+"/login", map[string]string{"email": "ann@example.com", "password": "secret"})
	loginResp.Body.Close()
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login status: got %d, want 200", loginResp.StatusCode)
	}

	// 2) POST /listings with the cookie from the jar
	createResp := postJSON(t, client, srv.URL+"/listings", map[string]any{
		"title": "Cabin", "address": "1 Lake Rd", "addedPhotos": []string{}, "description": "Quiet",
		"perks": []string{}, "extraInfo": "", "checkIn": 14, "checkOut": 11, "maxGuests": 4, "price": 120,
	})
	defer createResp.Body.Close()
	if createResp.StatusCode != http.StatusOK {
		t.Fatalf("POST /listings status: got %d, want 200", createResp.StatusCode)
	}
	var listing struct {
		ID    int `json:"id"`
		Owner int `json:"owner"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.ID != 3 || listing.Owner != 5 {
		t.Errorf("unexpected listing: %+v", listing)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_ProtectedRouteWithoutCookie(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig(t)))
	defer srv.Close()

	for _, path := range []string{"/booking", "/userlistings", "/activity"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s status: got %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestAPI_NonOwnerUpdateForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM listings WHERE id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow(3, 5, "Cabin", "1 Lake Rd", "{}", "Quiet", "{}", "", 14, 11, 4, 120.0))

	cfg := testConfig(t)
	srv := httptest.NewServer(newRouter(db, cfg))
	defer srv.Close()

	token, _ := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL()).Issue(auth.Identity{ID: 9, Email: "eve@example.com"})
	body, _ := json.Marshal(map[string]any{"id": 3, "title": "Stolen"})
	req, _ := http.NewRequest("PUT", srv.URL+"/listings", bytes.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /listings: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("PUT /listings status: got %d, want 403", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_InvalidAndUnknownRoutes(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/listings/abc")
	if err != nil {
		t.Fatalf("GET /listings/abc: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("GET /listings/abc status: got %d, want 400", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]string
	json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusNotFound || out["error"] != "Page not found" {
		t.Errorf("GET /nope: got %d %v", resp.StatusCode, out)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/listings", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /listings: %v", err)
	}
	defer resp.Body.Close()
	out = nil
	json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusNotFound || out["error"] != "Page not found" {
		t.Errorf("DELETE /listings: got %d %v", resp.StatusCode, out)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("DELETE /listings content type: %q", ct)
	}
}

// TestAPI_Health is a quick smoke test for the health endpoint.
func TestAPI_Health(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status: got %d, want 200", resp.StatusCode)
	}
}

// TestAPI_Ready checks that /ready pings the DB and returns 200 when DB is reachable.
func TestAPI_Ready(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	srv := httptest.NewServer(newRouter(db, testConfig(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /ready status: got %d, want 200", resp.StatusCode)
	}
}

func TestMigrateCmd_ConflictingFlags(t *testing.T) {
	cmd := NewMigrateCmd()
	cmd.SetArgs([]string{"--down", "1", "--status"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected flag conflict error, got %v", err)
	}
}
