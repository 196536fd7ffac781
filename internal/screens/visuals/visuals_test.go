package visuals

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/screentest"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("fake png bytes")
	card := deck.Flashcard{
		ID:       "abc",
		ImageURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload),
	}

	path, err := Save(card, dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "visual-abc.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Errorf("file = %q, want %q", got, payload)
	}
}

func TestSaveUsesMimeExtension(t *testing.T) {
	card := deck.Flashcard{ID: "j", ImageURL: "data:image/jpeg;base64,AAEC"}
	path, err := Save(card, t.TempDir())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Ext(path) != ".jpeg" {
		t.Errorf("ext = %q, want .jpeg", filepath.Ext(path))
	}
}

func TestSaveWithoutImage(t *testing.T) {
	if _, err := Save(deck.Flashcard{ID: "x"}, t.TempDir()); err == nil {
		t.Error("expected error for card without image")
	}
}

func TestViewWithoutVisuals(t *testing.T) {
	out := New(screentest.ReadySession(t), t.TempDir()).View(80, 30)
	if !strings.Contains(out, "Image generation may be disabled") {
		t.Errorf("expected disabled notice, got:\n%s", out)
	}
}
