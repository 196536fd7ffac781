package studygen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/llm"
)

const studyText = "Nephrotic syndrome: proteinuria > 3.5 g/day, hypoalbuminemia, edema, hyperlipidemia."

func TestLearningMaterial(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"summary": "  Massive proteinuria with edema.  ",
			"keyPoints": ["Proteinuria > 3.5 g/day", " ", "Hypoalbuminemia"],
			"mnemonics": [{"concept": "Nephrotic", "mnemonic": "PALE"}, {"concept": "blank", "mnemonic": ""}],
			"source": "Pathoma Ch. 12"
		}`),
	})
	gen := New(mock, DefaultConfig())

	m, err := gen.LearningMaterial(context.Background(), studyText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Summary != "Massive proteinuria with edema." {
		t.Errorf("summary = %q", m.Summary)
	}
	if len(m.KeyPoints) != 2 {
		t.Errorf("expected blank key points dropped, got %q", m.KeyPoints)
	}
	if len(m.Mnemonics) != 1 || m.Mnemonics[0].Mnemonic != "PALE" {
		t.Errorf("mnemonics = %+v", m.Mnemonics)
	}
	if m.Source != "Pathoma Ch. 12" {
		t.Errorf("source = %q", m.Source)
	}

	req, _ := mock.LastCall()
	if req.Schema != MaterialSchema {
		t.Error("expected the material schema")
	}
	if req.MaxTokens != DefaultConfig().MaterialMaxTokens {
		t.Errorf("max tokens = %d", req.MaxTokens)
	}
	if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, studyText) {
		t.Errorf("user message should carry the study text: %+v", req.Messages)
	}
}

func TestLearningMaterial_EmptySummary(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary": " ", "keyPoints": [], "mnemonics": [], "source": ""}`),
	})
	_, err := New(mock, DefaultConfig()).LearningMaterial(context.Background(), studyText)

	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestFlashcards(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"cards": [
			{"question": "Protein loss threshold?", "answer": "> 3.5 g/day", "visualAidPrompt": " Podocyte effacement on EM ", "source": "UWorld"},
			{"question": "Why edema?", "answer": "Low oncotic pressure", "visualAidPrompt": "", "source": ""}
		]}`),
	})
	cards, err := New(mock, DefaultConfig()).Flashcards(context.Background(), studyText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []deck.CardDraft{
		{Question: "Protein loss threshold?", Answer: "> 3.5 g/day", VisualAidPrompt: "Podocyte effacement on EM", Source: "UWorld"},
		{Question: "Why edema?", Answer: "Low oncotic pressure"},
	}
	if len(cards) != len(want) {
		t.Fatalf("got %d cards, want %d", len(cards), len(want))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("card %d = %+v, want %+v", i, cards[i], want[i])
		}
	}
}

func TestFlashcards_EmptySetAllowed(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"cards": []}`)})
	cards, err := New(mock, DefaultConfig()).Flashcards(context.Background(), studyText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("got %d cards, want 0", len(cards))
	}
}

func TestFlashcards_BlankAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"cards": [{"question": "Q?", "answer": "  ", "visualAidPrompt": "", "source": ""}]}`),
	})
	_, err := New(mock, DefaultConfig()).Flashcards(context.Background(), studyText)

	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestMCQs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name: "valid",
			content: `{"questions": [{"question": "A 6-year-old has periorbital edema...", "options": ["Minimal change disease", " FSGS "],
				"answer": "Minimal change disease", "explanation": "Most common in children.", "source": "Amboss"}]}`,
		},
		{
			name: "answer not an option",
			content: `{"questions": [{"question": "Q", "options": ["A", "B"], "answer": "C", "explanation": "", "source": ""}]}`,
			wantErr: true,
		},
		{
			name:    "too few options",
			content: `{"questions": [{"question": "Q", "options": ["A"], "answer": "A", "explanation": "", "source": ""}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			qs, err := New(mock, DefaultConfig()).MCQs(context.Background(), studyText)
			if tt.wantErr {
				var invalid *llm.ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(qs) != 1 || qs[0].Options[1] != "FSGS" {
				t.Errorf("questions = %+v", qs)
			}
		})
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	_, err := New(mock, DefaultConfig()).MCQs(context.Background(), studyText)

	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected wrapped ErrRateLimit, got %v", err)
	}
}

func TestGenerate_SetsPurpose(t *testing.T) {
	rec := &purposeRecorder{}
	gen := New(rec, DefaultConfig())
	ctx := context.Background()

	gen.LearningMaterial(ctx, studyText)
	gen.Flashcards(ctx, studyText)
	gen.MCQs(ctx, studyText)

	want := []string{llm.PurposeLearningMaterial, llm.PurposeFlashcards, llm.PurposeMCQs}
	if strings.Join(rec.purposes, ",") != strings.Join(want, ",") {
		t.Errorf("purposes = %v, want %v", rec.purposes, want)
	}
}

func TestCheckMCQ(t *testing.T) {
	q := deck.MCQ{
		Question:    "First-line for minimal change disease?",
		Options:     []string{"Corticosteroids", "Cyclophosphamide"},
		Answer:      "Corticosteroids",
		Explanation: "Steroid responsive.",
	}

	res, err := CheckMCQ(q, "Cyclophosphamide")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Correct || res.Answer != "Corticosteroids" || res.Explanation != "Steroid responsive." {
		t.Errorf("result = %+v", res)
	}

	res, _ = CheckMCQ(q, "Corticosteroids")
	if !res.Correct {
		t.Error("expected the correct option to be accepted")
	}

	if _, err := CheckMCQ(q, "Rituximab"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
}

// purposeRecorder fails every request but remembers its purpose.
type purposeRecorder struct {
	purposes []string
}

func (p *purposeRecorder) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	return nil, &llm.ErrProviderUnavailable{}
}

func (p *purposeRecorder) ModelID() string { return "recorder" }
