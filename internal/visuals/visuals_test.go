package visuals

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/llm"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/studygen"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// collector records hook calls.
type collector struct {
	mu       sync.Mutex
	started  []string
	finished map[string]Result
}

func newCollector() *collector {
	return &collector{finished: make(map[string]Result)}
}

func (c *collector) hooks() Hooks {
	return Hooks{
		Started: func(id string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.started = append(c.started, id)
		},
		Finished: func(r Result) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.finished[r.CardID] = r
		},
	}
}

func testCards() []deck.Flashcard {
	return []deck.Flashcard{
		{ID: "a", VisualAidPrompt: "nephron"},
		{ID: "b", VisualAidPrompt: "glomerulus"},
		{ID: "c"},
		{ID: "d", VisualAidPrompt: "podocyte", ImageURL: "data:image/png;base64,AAAA"},
		{ID: "e", VisualAidPrompt: "loop of Henle"},
	}
}

func TestEligible(t *testing.T) {
	var ids []string
	for _, c := range Eligible(testCards()) {
		ids = append(ids, c.ID)
	}
	if got := strings.Join(ids, ","); got != "a,b,e" {
		t.Errorf("eligible = %s, want a,b,e", got)
	}
}

func TestRun_PerCardIsolation(t *testing.T) {
	images := llm.NewMockImageProvider()
	images.FailPrompt(studygen.VisualPrompt("glomerulus"), errors.New("safety filter"))
	o := New(images, DefaultConfig(), quietLogger)

	col := newCollector()
	o.Run(context.Background(), testCards(), col.hooks())

	if len(col.started) != 3 {
		t.Fatalf("started %d cards, want 3", len(col.started))
	}
	if len(col.finished) != 3 {
		t.Fatalf("finished %d cards, want 3", len(col.finished))
	}
	for _, id := range []string{"a", "e"} {
		r := col.finished[id]
		if r.Err != nil || !strings.HasPrefix(r.ImageURL, "data:image/png;base64,") {
			t.Errorf("card %s: %+v", id, r)
		}
	}
	if r := col.finished["b"]; r.Err == nil || r.ImageURL != "" {
		t.Errorf("card b should fail without an image: %+v", r)
	}
	if images.CallCount() != 3 {
		t.Errorf("image calls = %d, want 3", images.CallCount())
	}
}

func TestRun_WrapsPrompt(t *testing.T) {
	images := llm.NewMockImageProvider()
	o := New(images, Config{Size: "512x512"}, quietLogger)
	o.Run(context.Background(), []deck.Flashcard{{ID: "a", VisualAidPrompt: "nephron"}}, Hooks{})

	if len(images.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(images.Calls))
	}
	if images.Calls[0].Prompt != studygen.VisualPrompt("nephron") || images.Calls[0].Size != "512x512" {
		t.Errorf("request = %+v", images.Calls[0])
	}
}

func TestRun_BoundedConcurrency(t *testing.T) {
	images := llm.NewMockImageProvider()
	release := images.Block()
	o := New(images, Config{MaxConcurrent: 2}, quietLogger)

	var cards []deck.Flashcard
	for _, id := range []string{"1", "2", "3", "4", "5", "6"} {
		cards = append(cards, deck.Flashcard{ID: id, VisualAidPrompt: "prompt " + id})
	}

	done := make(chan struct{})
	go func() {
		o.Run(context.Background(), cards, Hooks{})
		close(done)
	}()
	release()
	<-done

	if peak := images.PeakConcurrency(); peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
	if images.CallCount() != 6 {
		t.Errorf("calls = %d, want 6", images.CallCount())
	}
}

func TestRun_Canceled(t *testing.T) {
	images := llm.NewMockImageProvider()
	images.Block()
	o := New(images, DefaultConfig(), quietLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	col := newCollector()
	o.Run(ctx, testCards(), col.hooks())

	if len(col.finished) != 3 {
		t.Fatalf("finished %d cards, want 3", len(col.finished))
	}
	for id, r := range col.finished {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("card %s: err = %v, want canceled", id, r.Err)
		}
	}
}

func TestRun_Disabled(t *testing.T) {
	o := New(nil, DefaultConfig(), quietLogger)
	if o.Enabled() {
		t.Fatal("expected disabled orchestrator")
	}

	col := newCollector()
	o.Run(context.Background(), testCards(), col.hooks())
	if len(col.started) != 0 || len(col.finished) != 0 {
		t.Error("disabled orchestrator should not touch cards")
	}
}

func TestDataURI(t *testing.T) {
	tests := []struct {
		mime string
		data []byte
		want string
	}{
		{"image/png", []byte("hi"), "data:image/png;base64,aGk="},
		{"", []byte("hi"), "data:image/png;base64,aGk="},
		{"image/jpeg", nil, "data:image/jpeg;base64,"},
	}
	for _, tt := range tests {
		if got := DataURI(tt.mime, tt.data); got != tt.want {
			t.Errorf("DataURI(%q, %q) = %q, want %q", tt.mime, tt.data, got, tt.want)
		}
	}
}

func TestDecodeDataURI(t *testing.T) {
	mime, data, err := DecodeDataURI(DataURI("image/png", []byte("hi")))
	if err != nil {
		t.Fatalf("DecodeDataURI: %v", err)
	}
	if mime != "image/png" || string(data) != "hi" {
		t.Errorf("got (%q, %q), want (image/png, hi)", mime, data)
	}

	for _, bad := range []string{"", "https://example.com/a.png", "data:image/png,aGk=", "data:image/png;base64"} {
		if _, _, err := DecodeDataURI(bad); !errors.Is(err, ErrNotDataURI) {
			t.Errorf("DecodeDataURI(%q) err = %v, want ErrNotDataURI", bad, err)
		}
	}
}
