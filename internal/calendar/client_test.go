package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func newTestClient(url string, tokenFunc TokenFunc) *Client {
	return NewClient(url, 5*time.Second, tokenFunc)
}

func TestStatus(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/calendar/status" {
				t.Errorf("path = %q, want /calendar/status", r.URL.Path)
			}
			_ = json.NewEncoder(w).Encode(ConnectionStatus{Connected: true, Email: "ada@example.com"})
		}))
		defer srv.Close()

		got := newTestClient(srv.URL, nil).Status(context.Background())
		if !got.Connected || got.Email != "ada@example.com" {
			t.Errorf("Status = %+v, want connected ada@example.com", got)
		}
	})

	t.Run("server error degrades to not connected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		got := newTestClient(srv.URL, nil).Status(context.Background())
		if got.Connected || got.Email != "" {
			t.Errorf("Status = %+v, want zero value", got)
		}
	})

	t.Run("unreachable server degrades to not connected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		got := newTestClient(srv.URL, nil).Status(context.Background())
		if got.Connected {
			t.Errorf("Status = %+v, want zero value", got)
		}
	})

	t.Run("garbage body degrades to not connected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		got := newTestClient(srv.URL, nil).Status(context.Background())
		if got.Connected {
			t.Errorf("Status = %+v, want zero value", got)
		}
	})
}

func TestAuthHeaders(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1"})
		_ = json.NewEncoder(w).Encode(ConnectionStatus{Connected: true})
	}))
	defer srv.Close()

	tokenFunc := func() *oauth2.Token {
		return &oauth2.Token{AccessToken: "tok-1"}
	}
	c := newTestClient(srv.URL, tokenFunc)

	c.Status(context.Background())
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-1")
	}

	// The session cookie from the first response lands in the jar and
	// travels on later requests.
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parsing server url: %v", err)
	}
	var gotCookie string
	for _, ck := range c.httpClient.Jar.Cookies(u) {
		if ck.Name == "session" {
			gotCookie = ck.Value
		}
	}
	if gotCookie != "s1" {
		t.Errorf("session cookie = %q, want %q", gotCookie, "s1")
	}
}

func TestAuthURL(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/calendar/oauth/url" {
				t.Errorf("path = %q, want /calendar/oauth/url", r.URL.Path)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://accounts.example.com/auth?x=1"})
		}))
		defer srv.Close()

		got, err := newTestClient(srv.URL, nil).AuthURL(context.Background())
		if err != nil {
			t.Fatalf("AuthURL failed: %v", err)
		}
		if got != "https://accounts.example.com/auth?x=1" {
			t.Errorf("AuthURL = %q", got)
		}
	})

	t.Run("missing url in body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer srv.Close()

		if _, err := newTestClient(srv.URL, nil).AuthURL(context.Background()); err == nil {
			t.Error("expected error for missing url")
		}
	})

	t.Run("error envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":{"code":"UPSTREAM","message":"google is down"}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, nil).AuthURL(context.Background())
		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("got %T, want *APIError", err)
		}
		if apiErr.Code != "UPSTREAM" || apiErr.Message != "google is down" {
			t.Errorf("APIError = %+v", apiErr)
		}
	})
}

func TestClientPush(t *testing.T) {
	t.Run("success returns created count", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/calendar/push" {
				t.Errorf("path = %q, want /calendar/push", r.URL.Path)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			_ = json.NewEncoder(w).Encode(PushResult{CreatedCount: 9})
		}))
		defer srv.Close()

		got, err := newTestClient(srv.URL, nil).Push(context.Background(), PushRequest{StartDate: "2026-01-05"})
		if err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if got.CreatedCount != 9 {
			t.Errorf("CreatedCount = %d, want 9", got.CreatedCount)
		}
	})

	t.Run("empty body defaults to zero count", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		got, err := newTestClient(srv.URL, nil).Push(context.Background(), PushRequest{StartDate: "2026-01-05"})
		if err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if got.CreatedCount != 0 {
			t.Errorf("CreatedCount = %d, want 0", got.CreatedCount)
		}
	})

	t.Run("needs scopes error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"NEEDS_SCOPES","message":"more scopes required","authUrl":"https://accounts.example.com/step-up"}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, nil).Push(context.Background(), PushRequest{StartDate: "2026-01-05"})
		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("got %T, want *APIError", err)
		}
		if !apiErr.NeedsScopes() {
			t.Errorf("NeedsScopes() = false for %+v", apiErr)
		}
		if apiErr.AuthURL != "https://accounts.example.com/step-up" {
			t.Errorf("AuthURL = %q", apiErr.AuthURL)
		}
	})

	t.Run("forbidden without auth url is not a step-up", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"NEEDS_SCOPES","message":"no url"}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, nil).Push(context.Background(), PushRequest{StartDate: "2026-01-05"})
		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("got %T, want *APIError", err)
		}
		if apiErr.NeedsScopes() {
			t.Error("NeedsScopes() = true without an auth url")
		}
	})

	t.Run("plain text error keeps fallback message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "tipped over", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, nil).Push(context.Background(), PushRequest{StartDate: "2026-01-05"})
		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("got %T, want *APIError", err)
		}
		if apiErr.Message != "could not add the plan to your calendar" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestEndpointJoining(t *testing.T) {
	c := NewClient("https://api.example.com/v1/", time.Second, nil)
	if got := c.endpoint("/calendar/push"); got != "https://api.example.com/v1/calendar/push" {
		t.Errorf("endpoint = %q", got)
	}
	if got := c.endpoint("calendar/push"); got != "https://api.example.com/v1/calendar/push" {
		t.Errorf("endpoint = %q", got)
	}
}
