package learn

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/screentest"
)

func TestQuizFlow(t *testing.T) {
	l := New(screentest.ReadySession(t))
	if l.Title() != "Learn" {
		t.Fatalf("title = %q", l.Title())
	}

	l.Update(screentest.Special(tea.KeyTab))
	if l.Title() != "Quiz" {
		t.Fatalf("tab should switch to the quiz, title = %q", l.Title())
	}

	l.Update(screentest.Key('2'))
	answered, correct := l.Score()
	if answered != 1 || correct != 1 {
		t.Errorf("score = %d/%d, want 1/1", correct, answered)
	}

	l.Update(screentest.Key('n'))
	if l.current != 1 {
		t.Fatalf("current = %d, want 1", l.current)
	}
	l.Update(screentest.Key('2'))
	answered, correct = l.Score()
	if answered != 2 || correct != 1 {
		t.Errorf("score = %d/%d, want 1/2", correct, answered)
	}

	// Further keys on an answered question do nothing.
	l.Update(screentest.Key('1'))
	if got := l.quiz[1].Result.Selected; got != "Amino transfer protein" {
		t.Errorf("selection changed to %q", got)
	}
}

func TestRenderMaterial(t *testing.T) {
	sess := screentest.ReadySession(t)
	out := RenderMaterial(sess.Snapshot().Material, 60)
	for _, want := range []string{"Summary", "mitochondria", "Key Points", "Krebs"} {
		if !strings.Contains(out, want) {
			t.Errorf("material view missing %q", want)
		}
	}
	if !strings.Contains(RenderMaterial(nil, 60), "Nothing generated") {
		t.Error("nil material should render a placeholder")
	}
}
