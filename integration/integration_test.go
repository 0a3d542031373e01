package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jobjourney/jjprep/internal/calendar"
	"github.com/jobjourney/jjprep/internal/connect"
	"github.com/jobjourney/jjprep/internal/db"
	"github.com/jobjourney/jjprep/internal/plan"
	"github.com/jobjourney/jjprep/internal/token"
	"golang.org/x/oauth2"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// fakeBackend is a scripted calendar API: it can demand a scope
// step-up on the first push and succeed on the next.
type fakeBackend struct {
	mu          sync.Mutex
	stepUpFirst bool
	pushes      []calendar.PushRequest
	authURL     string
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/calendar/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(calendar.ConnectionStatus{Connected: true, Email: "ada@example.com"})
	})

	mux.HandleFunc("/calendar/oauth/url", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"url": b.authURL})
	})

	mux.HandleFunc("/calendar/push", func(w http.ResponseWriter, r *http.Request) {
		var req calendar.PushRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}

		b.mu.Lock()
		b.pushes = append(b.pushes, req)
		needStepUp := b.stepUpFirst && len(b.pushes) == 1
		b.mu.Unlock()

		if needStepUp {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"NEEDS_SCOPES","message":"more scopes required","authUrl":"` + b.authURL + `"}}`))
			return
		}

		created := 0
		for _, d := range req.Plan {
			created += len(d.Tasks)
		}
		if req.PlanID != "" {
			created = 3
		}
		_ = json.NewEncoder(w).Encode(calendar.PushResult{CreatedCount: created})
	})

	return mux
}

// autoAuthorizer plays the user: it completes the loopback callback as
// soon as a flow asks for authorization.
type autoAuthorizer struct {
	flow  *connect.Flow
	calls int
}

func (a *autoAuthorizer) Authorize(ctx context.Context, authURL string) error {
	a.calls++
	return a.flow.Authorize(ctx, authURL)
}

func storedPlan(t *testing.T, repo *db.SQLite, id string) *plan.Plan {
	t.Helper()
	p, err := plan.New(id, "Backend interview prep", []plan.DayPlan{
		{Day: 1, Tasks: []plan.Task{
			{Title: "Review SQL", Type: "study", DurationMinutes: 60, Resources: "https://use-the-index-luke.com"},
			{Title: "Practice joins", Type: "practice", DurationMinutes: 45},
			{Title: "Mock round", Type: "mock", DurationMinutes: 60},
			{Title: "Extra reading", Type: "study", DurationMinutes: 30},
		}},
		{Day: 2, Tasks: nil},
	})
	if err != nil {
		t.Fatalf("building plan: %v", err)
	}
	if err := repo.CreatePlan(context.Background(), p); err != nil {
		t.Fatalf("storing plan: %v", err)
	}
	return p
}

func TestPushFlowEndToEnd(t *testing.T) {
	repo := openRepo(t)

	backend := &fakeBackend{authURL: "https://accounts.example.com/auth"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	tokens := token.NewStore(filepath.Join(t.TempDir(), "token.json"))
	if err := tokens.Save(&oauth2.Token{AccessToken: "tok-e2e"}); err != nil {
		t.Fatalf("saving token: %v", err)
	}

	client := calendar.NewClient(srv.URL, 5*time.Second, tokens.Accessor())

	status := client.Status(context.Background())
	if !status.Connected {
		t.Fatalf("Status = %+v, want connected", status)
	}

	p := storedPlan(t, repo, "plan-e2e")
	orch := calendar.NewOrchestrator(client, nil, []int{9, 14, 19}, 60, "Europe/Madrid")

	result, err := orch.Push(context.Background(), p, "2026-09-07")
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	// Local plan: days travel inline, capped per day, resources
	// stripped.
	if len(backend.pushes) != 1 {
		t.Fatalf("pushes = %d, want 1", len(backend.pushes))
	}
	req := backend.pushes[0]
	if req.PlanID != "" {
		t.Errorf("PlanID = %q for a local plan", req.PlanID)
	}
	if len(req.Plan) != 2 {
		t.Fatalf("inlined days = %d, want 2", len(req.Plan))
	}
	if len(req.Plan[0].Tasks) != plan.MaxPreviewTasks {
		t.Errorf("day 1 tasks = %d, want %d", len(req.Plan[0].Tasks), plan.MaxPreviewTasks)
	}
	if len(req.Plan[1].Tasks) != 0 {
		t.Errorf("day 2 tasks = %d, want 0", len(req.Plan[1].Tasks))
	}
	if result.CreatedCount != 3 {
		t.Errorf("CreatedCount = %d, want 3", result.CreatedCount)
	}
}

func TestPushFlowStepUp(t *testing.T) {
	repo := openRepo(t)

	// The auth URL points at a page that completes the loopback
	// callback itself, standing in for the external consent screen.
	var backend *fakeBackend
	consent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		redirect := r.URL.Query().Get("redirect_uri")
		state := r.URL.Query().Get("state")
		go func() {
			resp, err := http.Get(redirect + "?event=" + url.QueryEscape(connect.Signal) + "&state=" + state)
			if err == nil {
				_ = resp.Body.Close()
			}
		}()
		w.WriteHeader(http.StatusOK)
	}))
	defer consent.Close()

	backend = &fakeBackend{stepUpFirst: true, authURL: consent.URL}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := calendar.NewClient(srv.URL, 5*time.Second, nil)

	// The flow's browser hook fetches the consent page instead of
	// opening a real browser.
	browse := func(target string) error {
		resp, err := http.Get(target)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		return nil
	}
	auth := &autoAuthorizer{flow: connect.NewFlowWithBrowser(5*time.Second, nil, browse)}

	p := storedPlan(t, repo, "plan-stepup")
	orch := calendar.NewOrchestrator(client, auth, []int{9, 14, 19}, 60, "Europe/Madrid")

	result, err := orch.Push(context.Background(), p, "2026-09-07")
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	if auth.calls != 1 {
		t.Errorf("authorization rounds = %d, want 1", auth.calls)
	}
	if len(backend.pushes) != 2 {
		t.Fatalf("pushes = %d, want 2", len(backend.pushes))
	}
	if backend.pushes[0].StartDate != backend.pushes[1].StartDate ||
		len(backend.pushes[0].Plan) != len(backend.pushes[1].Plan) {
		t.Error("retry body differs from the original")
	}
	if result.CreatedCount == 0 {
		t.Error("CreatedCount = 0 after successful retry")
	}
}

func TestPushMissingStartDate(t *testing.T) {
	repo := openRepo(t)
	p := storedPlan(t, repo, "plan-nodate")

	orch := calendar.NewOrchestrator(nil, nil, []int{9, 14, 19}, 60, "Europe/Madrid")
	if _, err := orch.Push(context.Background(), p, ""); !errors.Is(err, calendar.ErrMissingStartDate) {
		t.Fatalf("got %v, want %v", err, calendar.ErrMissingStartDate)
	}
}
