package studygen

import (
	"strings"
	"testing"
)

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(mcqTask, "\n  Renal physiology  \n")
	if !strings.HasPrefix(msg, mcqTask) {
		t.Errorf("message should start with the task: %q", msg)
	}
	if !strings.Contains(msg, "---\nRenal physiology\n---") {
		t.Errorf("content should be fenced and trimmed: %q", msg)
	}
}

func TestTutorSystemPrompt(t *testing.T) {
	p := TutorSystemPrompt("Loop diuretics act on NKCC2.")
	for _, want := range []string{`"Dr. Recall,"`, "Base your answers strictly on the provided context.", "---\nLoop diuretics act on NKCC2.\n---"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestTutorSystemPromptWithoutNotes(t *testing.T) {
	p := TutorSystemPrompt("  ")
	if strings.Contains(p, "Context:") {
		t.Errorf("empty notes should not produce a context block:\n%s", p)
	}
	if !strings.Contains(p, "not loaded any study notes") {
		t.Errorf("prompt should mention missing notes:\n%s", p)
	}
}

func TestVisualPrompt(t *testing.T) {
	got := VisualPrompt(" Labeled nephron ")
	want := "Generate a clear, labeled medical illustration for: Labeled nephron. Examples: histology slide, X-ray, CT scan, anatomical diagram, or biochemical pathway. Keep it simple and clear for study purposes."
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}
