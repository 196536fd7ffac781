package studygen

import (
	"errors"
	"slices"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
)

// ErrUnknownOption is returned when a selection is not one of the
// question's options.
var ErrUnknownOption = errors.New("studygen: option is not offered by this question")

// MCQResult is the revealed outcome of answering an MCQ.
type MCQResult struct {
	Selected    string `json:"selected"`
	Correct     bool   `json:"correct"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

// CheckMCQ grades a selected option and reveals the answer and
// explanation.
func CheckMCQ(q deck.MCQ, option string) (MCQResult, error) {
	if !slices.Contains(q.Options, option) {
		return MCQResult{}, ErrUnknownOption
	}
	return MCQResult{
		Selected:    option,
		Correct:     q.Check(option),
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}, nil
}
