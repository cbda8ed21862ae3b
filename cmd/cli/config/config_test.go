package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAPIURL(t *testing.T) {
	t.Setenv("STAYBOOK_API_URL", "")
	if got := APIURL(); got != defaultAPIURL {
		t.Errorf("default: got %q", got)
	}

	t.Setenv("STAYBOOK_API_URL", "http://api.test:9000/")
	if got := APIURL(); got != "http://api.test:9000" {
		t.Errorf("env: got %q", got)
	}

	SetAPIURL("http://flag.test/")
	t.Cleanup(func() { SetAPIURL("") })
	if got := APIURL(); got != "http://flag.test" {
		t.Errorf("override: got %q", got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := ReadToken(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if err := SaveToken("abc.def.ghi"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	info, err := os.Stat(filepath.Join(home, tokenFileName))
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode: %v", info.Mode().Perm())
	}
	token, err := ReadToken()
	if err != nil || token != "abc.def.ghi" {
		t.Errorf("ReadToken: %q, %v", token, err)
	}

	if err := ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if err := ClearToken(); err != nil {
		t.Errorf("second ClearToken: %v", err)
	}
	if _, err := ReadToken(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn after clear, got %v", err)
	}
}
