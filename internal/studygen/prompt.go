package studygen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an AI study assistant for medical students preparing for exams like USMLE and MBBS.

Rules:
- Work only from the study text you are given. Do not invent facts that are not supported by it.
- Prefer high-yield facts: mechanisms, classic presentations, first-line treatments, buzzwords.
- Keep answers concise. Flashcard answers should fit on the back of an index card.
- When you cite a source, name a well-known resource such as "Pathoma", "First Aid for USMLE" or "Boards and Beyond". Leave the source empty if nothing fits.`

const materialTask = `Based on the following study text, generate a high-yield summary, key points, and mnemonics.`

const flashcardTask = `Create 10-15 Anki-style flashcards from the study text below. Each flashcard needs a question, a concise answer, a potential source, and a prompt for a relevant medical visual (e.g. histology, X-ray, diagram). Leave the visual prompt empty when no image would help.`

const mcqTask = `Create 3-5 high-yield, USMLE-style multiple-choice questions based on the study text below. Each question must have a clinical vignette, 3-5 options, a single correct answer copied exactly from the options, and a brief explanation citing a source.`

// buildUserMessage frames the learner's text for one generation task.
func buildUserMessage(task, content string) string {
	var b strings.Builder
	b.WriteString(task)
	b.WriteString("\n\nContent:\n---\n")
	b.WriteString(strings.TrimSpace(content))
	b.WriteString("\n---\n")
	return b.String()
}

// TutorSystemPrompt builds the tutor persona prompt grounded in the
// learner's study text.
func TutorSystemPrompt(context string) string {
	context = strings.TrimSpace(context)
	if context == "" {
		return `You are "Dr. Recall," a friendly and brilliant AI medical tutor. Your goal is to help students deeply understand and retain high-yield medical concepts for exams like USMLE and MBBS. Use analogies, Socratic questioning, and always be encouraging. The student has not loaded any study notes yet: answer from general medical knowledge and remind them that pasting their notes lets you answer from their material.`
	}
	return fmt.Sprintf(`You are "Dr. Recall," a friendly and brilliant AI medical tutor. Your goal is to help students deeply understand and retain high-yield medical concepts for exams like USMLE and MBBS. Use analogies, Socratic questioning, and always be encouraging. Base your answers strictly on the provided context.

Context:
---
%s
---`, context)
}

// VisualPrompt wraps a flashcard's visual aid prompt into a request for a
// study illustration.
func VisualPrompt(prompt string) string {
	return fmt.Sprintf("Generate a clear, labeled medical illustration for: %s. Examples: histology slide, X-ray, CT scan, anatomical diagram, or biochemical pathway. Keep it simple and clear for study purposes.", strings.TrimSpace(prompt))
}
