package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDo_APIErrorWithFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation failed",
			"fields": map[string]string{"phone": "is required"},
		})
	}))
	defer srv.Close()
	t.Setenv("STAYBOOK_API_URL", srv.URL)

	_, _, err := New("").Do(http.MethodPost, "/booking", map[string]int{"listing": 1}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Fields["phone"] != "is required" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestDo_SendsCookieAndReadsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("token"); err != nil || c.Value != "old" {
			t.Errorf("expected token cookie, got %v", err)
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "new"})
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()
	t.Setenv("STAYBOOK_API_URL", srv.URL+"/")

	var out struct {
		OK bool `json:"ok"`
	}
	_, resp, err := New("old").Do(http.MethodGet, "/profile", nil, &out)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !out.OK || TokenFrom(resp) != "new" {
		t.Errorf("unexpected result: ok=%v token=%q", out.OK, TokenFrom(resp))
	}
}
