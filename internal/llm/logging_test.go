package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestWithLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider()
	if got := WithLogging(mock, "mock", nil); got != Provider(mock) {
		t.Error("expected nil repo to return the inner provider")
	}
}

func TestWithLogging_RecordsSuccess(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"cards":[]}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 34},
	})
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), PurposeFlashcards)
	_, err := p.Generate(ctx, Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "krebs cycle"}},
		Schema:   &Schema{Name: "study-flashcards", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Purpose != PurposeFlashcards || e.Provider != "mock" || e.Model != "mock" || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 34 {
		t.Errorf("tokens = %d/%d, want 12/34", e.InputTokens, e.OutputTokens)
	}
	for _, want := range []string{"[system]", "be brief", "[user]", "krebs cycle", "[schema: study-flashcards]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if e.ResponseBody != `{"cards":[]}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestWithLogging_RecordsFailure(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{Err: errors.New("quota exhausted")})
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), PurposeTutor)
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: PurposeTutor})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Success || events[0].ErrorMessage != "quota exhausted" {
		t.Errorf("events = %+v", events)
	}
}

func TestWithLogging_RecordsCanceledRequest(t *testing.T) {
	repo := openEventRepo(t)
	p := WithLogging(&slowProvider{delay: time.Second}, "mock", repo)

	ctx, cancel := context.WithCancel(WithPurpose(context.Background(), PurposeTutor))
	cancel()
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestWithImageLogging(t *testing.T) {
	repo := openEventRepo(t)
	images := NewMockImageProvider()
	p := WithImageLogging(images, "mock", repo)

	ctx := WithPurpose(context.Background(), PurposeVisualAid)
	if _, err := p.GenerateImage(ctx, ImageRequest{Prompt: "a neuron", Size: "1024x1024"}); err != nil {
		t.Fatalf("generate image: %v", err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Purpose != PurposeVisualAid || e.Model != "mock-image" {
		t.Errorf("event = %+v", e)
	}
	if !strings.Contains(e.RequestBody, "a neuron") || !strings.Contains(e.RequestBody, "1024x1024") {
		t.Errorf("request body = %q", e.RequestBody)
	}
	if e.ResponseBody != fmt.Sprintf("[image/png, %d bytes]", len(mockPNG)) {
		t.Errorf("response body should summarize the image: %q", e.ResponseBody)
	}
}
