package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jobjourney/jjprep/internal/config"
	"github.com/jobjourney/jjprep/internal/dateutil"
	"github.com/jobjourney/jjprep/internal/plan"
)

type fakeRepo struct {
	plans map[string]*plan.Plan
}

func (f *fakeRepo) CreatePlan(_ context.Context, p *plan.Plan) error {
	if _, ok := f.plans[p.ID]; ok {
		return plan.ErrDuplicateID
	}
	f.plans[p.ID] = p
	return nil
}

func (f *fakeRepo) GetPlan(_ context.Context, id string) (*plan.Plan, error) {
	return f.plans[id], nil
}

func (f *fakeRepo) ListPlans(_ context.Context) ([]*plan.Plan, error) {
	out := make([]*plan.Plan, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) DeletePlan(_ context.Context, id string) error {
	if _, ok := f.plans[id]; !ok {
		return plan.ErrPlanNotFound
	}
	delete(f.plans, id)
	return nil
}

func (f *fakeRepo) Close() error { return nil }

func newTestApp(t *testing.T) (*App, *fakeRepo) {
	t.Helper()
	cfg := config.Default()
	cfg.Auth.TokenPath = filepath.Join(t.TempDir(), "token.json")
	repo := &fakeRepo{plans: make(map[string]*plan.Plan)}
	return NewApp(repo, cfg), repo
}

func TestResolveStartDate(t *testing.T) {
	now := time.Date(2026, 9, 2, 15, 30, 0, 0, time.Local) // a Wednesday

	tests := []struct {
		in   string
		want string
	}{
		{"2026-09-07", "2026-09-07"},
		{"today", "2026-09-02"},
		{"tomorrow", "2026-09-03"},
		{"friday", "2026-09-04"},
		{"next-monday", "2026-09-07"},
		{"next-week", "2026-09-09"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := resolveStartDate(tt.in, now)
			if err != nil {
				t.Fatalf("resolveStartDate(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("resolveStartDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if _, err := resolveStartDate("someday", now); !errors.Is(err, dateutil.ErrInvalidDateFormat) {
		t.Errorf("resolveStartDate(someday) error = %v, want %v", err, dateutil.ErrInvalidDateFormat)
	}
}

func TestResolvePushPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("id and file together rejected", func(t *testing.T) {
		app, _ := newTestApp(t)
		if _, err := app.resolvePushPlan(ctx, []string{"abc"}, "plan.json"); err == nil {
			t.Error("expected error for both id and file")
		}
	})

	t.Run("neither id nor file rejected", func(t *testing.T) {
		app, _ := newTestApp(t)
		if _, err := app.resolvePushPlan(ctx, nil, ""); err == nil {
			t.Error("expected error for missing plan source")
		}
	})

	t.Run("stored plan by id", func(t *testing.T) {
		app, repo := newTestApp(t)
		p, err := plan.New("abc-1", "Prep", []plan.DayPlan{{Day: 1, Tasks: []plan.Task{{Title: "x"}}}})
		if err != nil {
			t.Fatalf("building plan: %v", err)
		}
		repo.plans[p.ID] = p

		got, err := app.resolvePushPlan(ctx, []string{"abc-1"}, "")
		if err != nil {
			t.Fatalf("resolvePushPlan failed: %v", err)
		}
		if got.ID != "abc-1" {
			t.Errorf("ID = %q, want abc-1", got.ID)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		app, _ := newTestApp(t)
		_, err := app.resolvePushPlan(ctx, []string{"nope"}, "")
		if !errors.Is(err, plan.ErrPlanNotFound) {
			t.Errorf("got %v, want %v", err, plan.ErrPlanNotFound)
		}
	})

	t.Run("file document gets a local id", func(t *testing.T) {
		app, _ := newTestApp(t)
		path := filepath.Join(t.TempDir(), "plan.json")
		doc := `{"title":"Ad hoc","days":[{"day":1,"tasks":[{"title":"x"}]}]}`
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatalf("writing plan file: %v", err)
		}

		got, err := app.resolvePushPlan(ctx, nil, path)
		if err != nil {
			t.Fatalf("resolvePushPlan failed: %v", err)
		}
		if !got.IsLocal() {
			t.Errorf("ID = %q, want a local id", got.ID)
		}
	})
}
