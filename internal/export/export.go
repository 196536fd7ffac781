// Package export writes a study session to an Excel workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/stats"
)

// Sheet names, in workbook order.
const (
	SheetFlashcards = "Flashcards"
	SheetMCQs       = "MCQs"
	SheetSummary    = "Summary"
	SheetProgress   = "Progress"
)

var (
	flashcardHeader = []any{"ID", "Question", "Answer", "Performance", "Reviews", "Last Reviewed", "Visual Prompt", "Source"}
	mcqHeader       = []any{"Question", "Options", "Answer", "Explanation", "Source"}
	progressHeader  = []any{"Date", "Correct", "Incorrect", "Total"}
)

// Workbook builds a workbook from a snapshot. The caller must Close it.
func Workbook(snap session.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetFlashcards); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{SheetMCQs, SheetSummary, SheetProgress} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w := &writer{f: f}
	w.header()
	w.flashcards(snap.Flashcards)
	w.mcqs(snap.MCQs)
	w.summary(snap.Material, snap.Stats, snap.Flashcards)
	w.progress(snap.Stats.ProgressHistory)
	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

// Write encodes the snapshot as .xlsx to out.
func Write(out io.Writer, snap session.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the snapshot as an .xlsx file at path.
func WriteFile(path string, snap session.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writer accumulates the first error so sheet builders stay linear.
type writer struct {
	f         *excelize.File
	err       error
	headStyle int
	wrapStyle int
}

func (w *writer) header() {
	if w.err != nil {
		return
	}
	w.headStyle, w.err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
	})
	if w.err != nil {
		return
	}
	w.wrapStyle, w.err = w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
}

func (w *writer) row(sheet string, n int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *writer) headerRow(sheet string, values []any) {
	w.row(sheet, 1, values)
	if w.err != nil {
		return
	}
	w.err = w.f.SetRowStyle(sheet, 1, 1, w.headStyle)
	if w.err != nil {
		return
	}
	w.err = w.f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (w *writer) widths(sheet string, widths map[string]float64) {
	for col, width := range widths {
		if w.err != nil {
			return
		}
		w.err = w.f.SetColWidth(sheet, col, col, width)
	}
}

func (w *writer) wrap(sheet, from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, from, to, w.wrapStyle)
}

func (w *writer) flashcards(cards []deck.Flashcard) {
	w.headerRow(SheetFlashcards, flashcardHeader)
	for i, c := range cards {
		lastReviewed := ""
		if c.LastReviewed != nil {
			lastReviewed = c.LastReviewed.Format("2006-01-02 15:04")
		}
		w.row(SheetFlashcards, i+2, []any{
			c.ID, c.Question, c.Answer, c.Performance.String(), c.ReviewCount,
			lastReviewed, c.VisualAidPrompt, c.Source,
		})
	}
	w.widths(SheetFlashcards, map[string]float64{"A": 14, "B": 50, "C": 40, "D": 12, "F": 18, "G": 36, "H": 20})
	if len(cards) > 0 {
		w.wrap(SheetFlashcards, "B2", fmt.Sprintf("C%d", len(cards)+1))
	}
}

func (w *writer) mcqs(qs []deck.MCQ) {
	w.headerRow(SheetMCQs, mcqHeader)
	for i, q := range qs {
		w.row(SheetMCQs, i+2, []any{
			q.Question, strings.Join(q.Options, "\n"), q.Answer, q.Explanation, q.Source,
		})
	}
	w.widths(SheetMCQs, map[string]float64{"A": 60, "B": 36, "C": 28, "D": 50, "E": 20})
	if len(qs) > 0 {
		w.wrap(SheetMCQs, "A2", fmt.Sprintf("D%d", len(qs)+1))
	}
}

func (w *writer) summary(m *deck.LearningMaterial, st stats.Stats, cards []deck.Flashcard) {
	n := 1
	add := func(values ...any) {
		w.row(SheetSummary, n, values)
		n++
	}

	add("Recall Strength", fmt.Sprintf("%d%%", st.RecallStrength))
	add("Topics Mastered", st.TopicsMastered)
	add("Streak", st.Streak)
	for _, b := range stats.Badges(st, cards) {
		if b.Earned {
			add("Badge", b.Name)
		}
	}
	n++

	if m == nil {
		w.widths(SheetSummary, map[string]float64{"A": 20, "B": 80})
		return
	}
	add("Summary", m.Summary)
	if m.Source != "" {
		add("Source", m.Source)
	}
	for _, p := range m.KeyPoints {
		add("Key Point", p)
	}
	for _, mn := range m.Mnemonics {
		add("Mnemonic", mn.Concept+": "+mn.Mnemonic)
	}
	w.widths(SheetSummary, map[string]float64{"A": 20, "B": 80})
	w.wrap(SheetSummary, "B1", fmt.Sprintf("B%d", n))
}

func (w *writer) progress(history []stats.ProgressRecord) {
	w.headerRow(SheetProgress, progressHeader)
	for i, r := range history {
		w.row(SheetProgress, i+2, []any{r.Date, r.Correct, r.Incorrect, r.Total()})
	}
	w.widths(SheetProgress, map[string]float64{"A": 14})
}
