package connect

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

func get(t *testing.T, rawURL string) *http.Response {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s failed: %v", rawURL, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func signalled(l *Listener) bool {
	select {
	case <-l.Done():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

func TestListenerSignal(t *testing.T) {
	l, err := NewListener()
	if err != nil {
		t.Fatalf("NewListener failed: %v", err)
	}
	defer func() { _ = l.Close() }()

	callback := fmt.Sprintf("%s?event=%s&state=%s", l.RedirectURL(), url.QueryEscape(Signal), l.State())
	resp := get(t, callback)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Calendar connected") {
		t.Errorf("success page missing: %q", body)
	}
	if !signalled(l) {
		t.Error("Done was not closed after the completion signal")
	}
}

func TestListenerIgnoresWrongEvent(t *testing.T) {
	l, err := NewListener()
	if err != nil {
		t.Fatalf("NewListener failed: %v", err)
	}
	defer func() { _ = l.Close() }()

	resp := get(t, l.RedirectURL()+"?event=something-else")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if signalled(l) {
		t.Error("Done closed for a mismatched event")
	}
}

func TestListenerIgnoresStateMismatch(t *testing.T) {
	l, err := NewListener()
	if err != nil {
		t.Fatalf("NewListener failed: %v", err)
	}
	defer func() { _ = l.Close() }()

	callback := fmt.Sprintf("%s?event=%s&state=wrong", l.RedirectURL(), url.QueryEscape(Signal))
	resp := get(t, callback)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if signalled(l) {
		t.Error("Done closed for a mismatched state")
	}
}

func TestListenerDuplicateSignal(t *testing.T) {
	l, err := NewListener()
	if err != nil {
		t.Fatalf("NewListener failed: %v", err)
	}
	defer func() { _ = l.Close() }()

	callback := fmt.Sprintf("%s?event=%s&state=%s", l.RedirectURL(), url.QueryEscape(Signal), l.State())
	for i := 0; i < 3; i++ {
		resp := get(t, callback)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, resp.StatusCode)
		}
	}
	if !signalled(l) {
		t.Error("Done was not closed")
	}
}

func TestListenerCloseIdempotent(t *testing.T) {
	l, err := NewListener()
	if err != nil {
		t.Fatalf("NewListener failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if _, err := http.Get(l.RedirectURL()); err == nil {
		t.Error("listener still serving after Close")
	}
}
