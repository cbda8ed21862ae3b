package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIURL = "http://localhost:8080"

const tokenFileName = ".staybook_token"

// ErrNotLoggedIn is returned by ReadToken when no token has been saved.
var ErrNotLoggedIn = errors.New("not logged in: run `staybook login` first")

var apiURLOverride string

// SetAPIURL makes APIURL return u for the rest of the process. An empty u clears it.
func SetAPIURL(u string) {
	apiURLOverride = strings.TrimRight(u, "/")
}

// APIURL returns the base URL for the staybook API: the SetAPIURL value, then
// the STAYBOOK_API_URL environment variable, then localhost.
func APIURL() string {
	if apiURLOverride != "" {
		return apiURLOverride
	}
	if v := os.Getenv("STAYBOOK_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// SaveToken stores the session token readable only by the current user.
func SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// ReadToken returns the saved session token.
func ReadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// ClearToken removes the saved token. A missing file is not an error.
func ClearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func tokenPath() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tokenFileName), nil
}
