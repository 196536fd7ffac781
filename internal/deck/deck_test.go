package deck

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		in      string
		want    Rating
		wantErr bool
	}{
		{"hard", RatingHard, false},
		{"good", RatingGood, false},
		{"easy", RatingEasy, false},
		{"new", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRating(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidRating) {
				t.Errorf("ParseRating(%q) err = %v, want ErrInvalidRating", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseRating(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestRatingPerformance(t *testing.T) {
	tests := []struct {
		r       Rating
		perf    Performance
		correct bool
	}{
		{RatingHard, PerformanceHard, false},
		{RatingGood, PerformanceGood, true},
		{RatingEasy, PerformanceEasy, true},
	}
	for _, tt := range tests {
		if got := tt.r.Performance(); got != tt.perf {
			t.Errorf("%v.Performance() = %v, want %v", tt.r, got, tt.perf)
		}
		if got := tt.r.Correct(); got != tt.correct {
			t.Errorf("%v.Correct() = %v, want %v", tt.r, got, tt.correct)
		}
	}
}

func TestFlashcardJSON(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	card := Flashcard{ID: "c1", Question: "Q", Answer: "A", Performance: PerformanceHard, LastReviewed: &now, ReviewCount: 1}

	data, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["performance"] != "hard" {
		t.Errorf("performance = %v, want hard", raw["performance"])
	}
	if _, ok := raw["imageUrl"]; ok {
		t.Error("empty imageUrl should be omitted")
	}
}

func TestFlashcardCloneIsolation(t *testing.T) {
	now := time.Now()
	orig := Flashcard{ID: "c1", LastReviewed: &now}
	cp := orig.Clone()
	*cp.LastReviewed = now.Add(time.Hour)
	if !orig.LastReviewed.Equal(now) {
		t.Error("clone shares LastReviewed with original")
	}
}

func TestMCQValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       MCQ
		wantErr bool
	}{
		{"valid", MCQ{Question: "q", Options: []string{"a", "b"}, Answer: "b"}, false},
		{"too few options", MCQ{Question: "q", Options: []string{"a"}, Answer: "a"}, true},
		{"answer missing", MCQ{Question: "q", Options: []string{"a", "b"}, Answer: "c"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMCQCheck(t *testing.T) {
	q := MCQ{Options: []string{"Aorta", "Vena cava"}, Answer: "Aorta"}
	if !q.Check("Aorta") {
		t.Error("expected correct option to check true")
	}
	if q.Check("Vena cava") {
		t.Error("expected wrong option to check false")
	}
}
