package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestFetch_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "tok-123" {
			t.Fatalf("missing access token, query=%s", r.URL.RawQuery)
		}
		w.Write([]byte("audio-bytes"))
	}))
	defer ts.Close()

	f := NewFetcher()
	path, cleanup, err := f.Fetch(context.Background(), ts.URL+"/rec/1", "tok-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("scratch file unreadable: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("unexpected content %q", data)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("cleanup must remove the scratch file")
	}
}

func TestFetch_RetriesTransientFailure(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("payload"))
	}))
	defer ts.Close()

	f := NewFetcher()
	path, cleanup, err := f.Fetch(context.Background(), ts.URL, "")
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	defer cleanup()

	if attempts < 2 {
		t.Fatalf("expected a retry, got %d attempts", attempts)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "payload" {
		t.Fatalf("partial first attempt leaked into scratch file: %q", data)
	}
}

func TestFetch_ClientErrorIsPermanent(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f := NewFetcher()
	_, _, err := f.Fetch(context.Background(), ts.URL, "")
	if err == nil {
		t.Fatal("expected error on 404")
	}
	if attempts != 1 {
		t.Fatalf("404 must not be retried, got %d attempts", attempts)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	f := NewFetcher()
	if _, _, err := f.Fetch(context.Background(), "://bad", ""); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
