package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/router"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/learn"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/screens/screentest"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
)

func generateMsg(t *testing.T, cmd tea.Cmd) generateDoneMsg {
	t.Helper()
	for _, msg := range screentest.Run(cmd) {
		if done, ok := msg.(generateDoneMsg); ok {
			return done
		}
	}
	t.Fatal("no generateDoneMsg produced")
	return generateDoneMsg{}
}

func TestStartsEditingWhenIdle(t *testing.T) {
	h := New(context.Background(), screentest.NewSession(), "")
	if !h.Capturing() {
		t.Error("idle session should start in the editor")
	}
	if !h.menu.Items[itemLearn].Disabled {
		t.Error("learn should be disabled without a deck")
	}
	if h.menu.Items[itemTutor].Disabled {
		t.Error("tutor should stay available without a deck")
	}
}

func TestGenerateEmptyText(t *testing.T) {
	h := New(context.Background(), screentest.NewSession(), "   ")
	_, cmd := h.Update(screentest.Ctrl('g'))
	if cmd != nil {
		t.Error("blank text should not start generation")
	}
	if h.notice == "" {
		t.Error("expected a notice for blank text")
	}
}

func TestGenerateAndOpenLearn(t *testing.T) {
	sess := screentest.NewSession()
	h := New(context.Background(), sess, "Mitochondria make ATP.")

	_, cmd := h.Update(screentest.Ctrl('g'))
	if !h.generating {
		t.Fatal("expected generating state")
	}
	done := generateMsg(t, cmd)
	if done.Err != nil {
		t.Fatalf("generate: %v", done.Err)
	}

	h.Update(done)
	if h.generating || h.Capturing() {
		t.Fatal("expected menu mode after generation")
	}
	if sess.Phase() != session.PhaseReady {
		t.Fatalf("phase = %v, want ready", sess.Phase())
	}
	if h.menu.Selected != itemLearn {
		t.Errorf("selected = %d, want learn", h.menu.Selected)
	}

	_, cmd = h.Update(screentest.Special(tea.KeyEnter))
	msgs := screentest.Run(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	push, ok := msgs[0].(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msgs[0])
	}
	if _, ok := push.Screen.(*learn.LearnScreen); !ok {
		t.Errorf("expected learn screen, got %T", push.Screen)
	}
}

func TestResetReturnsToEditor(t *testing.T) {
	sess := screentest.ReadySession(t)
	h := New(context.Background(), sess, "")
	if h.Capturing() {
		t.Fatal("ready session should start on the menu")
	}

	h.menu.Selected = itemReset
	h.Update(screentest.Special(tea.KeyEnter))

	if sess.Phase() != session.PhaseIdle {
		t.Errorf("phase = %v, want idle", sess.Phase())
	}
	if !h.Capturing() {
		t.Error("reset should reopen the editor")
	}
	if !h.menu.Items[itemRecall].Disabled {
		t.Error("recall should be disabled after reset")
	}
}
