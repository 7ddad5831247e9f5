package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnhanceSection_ParsesCandidateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("Expected API key in query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Hasil kegiatan berjalan lancar.  "}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.BaseURL = srv.URL

	got, err := c.EnhanceSection("hasil_uraian_1", "", "Pusling Desa Kupu")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "Hasil kegiatan berjalan lancar." {
		t.Errorf("Expected trimmed candidate text, got %q", got)
	}
}

func TestEnhanceSection_NoAPIKey(t *testing.T) {
	c := NewClient("")
	if _, err := c.EnhanceSection("a", "b", "c"); err != ErrNoAPIKey {
		t.Errorf("Expected ErrNoAPIKey, got %v", err)
	}
}

func TestEnhanceSection_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.BaseURL = srv.URL

	if _, err := c.EnhanceSection("a", "b", "c"); err == nil {
		t.Error("Expected error on upstream failure")
	}
}

func TestEnhanceSection_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.BaseURL = srv.URL

	if _, err := c.EnhanceSection("a", "b", "c"); err == nil {
		t.Error("Expected error on empty candidate list")
	}
}
