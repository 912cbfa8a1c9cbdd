package siteconfig_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	internal "github.com/goliatone/go-sitebuilder/internal/siteconfig"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

func TestStore_SavePostsBareConfiguration(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ = io.ReadAll(r.Body)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	store := internal.NewStore(httpapi.New(httpapi.Options{BaseURL: server.URL}), nil)

	config := siteconfig.Normalize(siteconfig.Document{})
	config.Header.CTAText = "Book Now"
	if err := store.SaveConfiguration(context.Background(), config); err != nil {
		t.Fatalf("SaveConfiguration() returned unexpected error: %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		t.Fatalf("POST body is not an object: %v", err)
	}
	if _, wrapped := top["config"]; wrapped {
		t.Fatalf("POST body must be the bare configuration, got keys %v", keysOf(top))
	}
	for _, section := range []string{"navigation", "header", "footer", "branding"} {
		if _, ok := top[section]; !ok {
			t.Fatalf("expected top-level %q section, got keys %v", section, keysOf(top))
		}
	}

	var sent siteconfig.Configuration
	if err := json.Unmarshal(body, &sent); err != nil {
		t.Fatalf("POST body does not decode as a configuration: %v", err)
	}
	if sent.Header.CTAText != "Book Now" {
		t.Fatalf("expected edited header in POST body, got %q", sent.Header.CTAText)
	}
}

func TestStore_LoadUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"config":{"header":{"cta_text":"Book Now"}}}`))
	}))
	defer server.Close()

	store := internal.NewStore(httpapi.New(httpapi.Options{BaseURL: server.URL}), nil)

	doc, err := store.LoadConfiguration(context.Background())
	if err != nil {
		t.Fatalf("LoadConfiguration() returned unexpected error: %v", err)
	}
	if doc.Header == nil || doc.Header.CTAText != "Book Now" {
		t.Fatalf("expected unwrapped header, got %+v", doc.Header)
	}
}

func TestStore_LoadMissingConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	store := internal.NewStore(httpapi.New(httpapi.Options{BaseURL: server.URL}), nil)

	if _, err := store.LoadConfiguration(context.Background()); !errors.Is(err, siteconfig.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func keysOf(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}
