package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "flashcards", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "mcqs", InputTokens: 80, OutputTokens: 200, LatencyMs: 700, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash-image", Purpose: "visual-aid", LatencyMs: 3000, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	// Newest first.
	if got[0].Purpose != "visual-aid" || got[2].Purpose != "flashcards" {
		t.Errorf("unexpected order: %s, %s, %s", got[0].Purpose, got[1].Purpose, got[2].Purpose)
	}
	if got[0].Success || got[0].ErrorMessage != "boom" {
		t.Errorf("failure event not preserved: %+v", got[0])
	}
	if !got[2].Success || got[2].RequestBody != "req" || got[2].ResponseBody != "resp" {
		t.Errorf("bodies not preserved: %+v", got[2])
	}
	if time.Since(got[0].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want recent", got[0].Timestamp)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit: got %d events, want 1", len(limited))
	}

	byPurpose, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "mcqs"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(byPurpose) != 1 || byPurpose[0].OutputTokens != 200 {
		t.Errorf("purpose filter: %+v", byPurpose)
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("from filter: got %d events, want 0", len(future))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	missing, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "tutor", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.Purpose != "tutor" || e.ID != 1 {
		t.Errorf("got %+v", e)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "tutor", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "tutor", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: false},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "mcqs", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	purposes, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(purposes) != 2 {
		t.Fatalf("got %d purposes, want 2", len(purposes))
	}
	tutor := purposes[0]
	if tutor.Purpose != "tutor" || tutor.Calls != 2 || tutor.Failures != 1 ||
		tutor.InputTokens != 40 || tutor.OutputTokens != 60 || tutor.AvgLatencyMs != 200 {
		t.Errorf("tutor usage = %+v", tutor)
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(models) != 2 || models[0].Model != "gemini-2.5-flash" || models[0].Calls != 2 {
		t.Errorf("model usage = %+v", models)
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "nested", "custom.db")
		t.Setenv("MEMORYMASTER_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("MEMORYMASTER_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "memorymaster", "memorymaster.db")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
